package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/testutil"
)

type feeFixture struct {
	db        *gorm.DB
	api       *testutil.Client
	classID   int64
	studentID int64
}

func newFeeFixture(t *testing.T) feeFixture {
	db := testutil.NewDB(t)
	classID := testutil.SeedClass(t, db, "Grade 8", "A", "2024-2025", 40)
	studentID := testutil.SeedStudent(t, db, "Aisha", classID)
	return feeFixture{
		db:        db,
		api:       testutil.NewClient(t, testutil.NewApp(t, db), 1),
		classID:   classID,
		studentID: studentID,
	}
}

func (f feeFixture) createFee(t *testing.T, feeType string, due any) int64 {
	t.Helper()
	res := f.api.Post("/api/fees", map[string]any{
		"studentId":    f.studentID,
		"classId":      f.classID,
		"feeType":      feeType,
		"amountDue":    due,
		"academicYear": "2024-2025",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	return int64(testutil.Obj(t, res.Body, "fee")["feeId"].(float64))
}

func TestCreateFeeThenDuplicate(t *testing.T) {
	f := newFeeFixture(t)
	body := map[string]any{
		"studentId":    f.studentID,
		"classId":      f.classID,
		"feeType":      "Tuition Fee",
		"amountDue":    10000,
		"academicYear": "2024-2025",
	}

	res := f.api.Post("/api/fees", body)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "Fee record created successfully", res.Body["message"])

	fee := testutil.Obj(t, res.Body, "fee")
	assert.Equal(t, float64(10000), fee["balance"])
	assert.Equal(t, float64(0), fee["amountPaid"])
	assert.Equal(t, "Aisha", testutil.Obj(t, fee, "student")["name"])
	assert.Equal(t, "Grade 8", testutil.Obj(t, fee, "class")["className"])

	res = f.api.Post("/api/fees", body)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Fee record already exists for this student, class, fee type, and academic year", res.Body["error"])
}

func TestCreateFeeRejectsBadInput(t *testing.T) {
	f := newFeeFixture(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		msg    string
	}{
		{
			name:   "missing fields",
			body:   map[string]any{"studentId": f.studentID},
			status: http.StatusBadRequest,
			msg:    "All required fields must be provided",
		},
		{
			name:   "zero amount",
			body:   map[string]any{"studentId": f.studentID, "classId": f.classID, "feeType": "Lab", "amountDue": 0, "academicYear": "2024-2025"},
			status: http.StatusBadRequest,
			msg:    "Amount due must be greater than 0",
		},
		{
			name:   "unknown student",
			body:   map[string]any{"studentId": 999, "classId": f.classID, "feeType": "Lab", "amountDue": 50, "academicYear": "2024-2025"},
			status: http.StatusNotFound,
			msg:    "Student not found",
		},
		{
			name:   "unknown class",
			body:   map[string]any{"studentId": f.studentID, "classId": 999, "feeType": "Lab", "amountDue": 50, "academicYear": "2024-2025"},
			status: http.StatusNotFound,
			msg:    "Class not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.api.Post("/api/fees", tt.body)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.msg, res.Body["error"])
		})
	}
}

func TestRecordPayment(t *testing.T) {
	f := newFeeFixture(t)
	id := f.createFee(t, "Tuition Fee", 10000)

	res := f.api.Post(fmt.Sprintf("/api/fees/%d/payment", id), map[string]any{"paymentAmount": 4000})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Payment recorded successfully", res.Body["message"])

	fee := testutil.Obj(t, res.Body, "fee")
	assert.Equal(t, float64(4000), fee["amountPaid"])
	assert.Equal(t, float64(6000), fee["balance"])
	assert.Equal(t, float64(10000), fee["amountDue"])

	payment := testutil.Obj(t, res.Body, "payment")
	assert.Equal(t, float64(4000), payment["amount"])
	assert.Equal(t, "cash", payment["method"])
	assert.NotEmpty(t, payment["date"])

	// amountPaid is accepted as an alias
	res = f.api.Post(fmt.Sprintf("/api/fees/%d/payment", id), map[string]any{"amountPaid": 1000.5, "paymentMethod": "bank"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	fee = testutil.Obj(t, res.Body, "fee")
	assert.Equal(t, 5000.5, fee["amountPaid"])
	assert.Equal(t, 4999.5, fee["balance"])
	assert.Equal(t, "bank", fee["paymentMethod"])
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	f := newFeeFixture(t)
	id := f.createFee(t, "Tuition Fee", 10000)
	path := fmt.Sprintf("/api/fees/%d/payment", id)

	require.Equal(t, http.StatusOK, f.api.Post(path, map[string]any{"paymentAmount": 4000}).Status)

	res := f.api.Post(path, map[string]any{"paymentAmount": 6000.01})
	require.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Payment amount cannot exceed balance amount", res.Body["error"])
	details := testutil.Obj(t, res.Body, "details")
	assert.Equal(t, float64(10000), details["currentDue"])
	assert.Equal(t, float64(4000), details["currentPaid"])
	assert.Equal(t, float64(6000), details["remainingBalance"])

	for _, bad := range []any{0, -5, "abc"} {
		res = f.api.Post(path, map[string]any{"paymentAmount": bad})
		assert.Equal(t, http.StatusBadRequest, res.Status, "amount %v", bad)
	}

	// stored state is unchanged
	res = f.api.Get(fmt.Sprintf("/api/fees/%d", id))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(4000), res.Body["amountPaid"])
	assert.Equal(t, float64(6000), res.Body["balance"])

	res = f.api.Post("/api/fees/9999/payment", map[string]any{"paymentAmount": 1})
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Fee record not found", res.Body["error"])
}

func TestDeleteFeeBlockedByPayments(t *testing.T) {
	f := newFeeFixture(t)
	paid := f.createFee(t, "Tuition Fee", 10000)
	unpaid := f.createFee(t, "Library", 300)

	require.Equal(t, http.StatusOK, f.api.Post(fmt.Sprintf("/api/fees/%d/payment", paid), map[string]any{"paymentAmount": 1}).Status)

	res := f.api.Delete(fmt.Sprintf("/api/fees/%d", paid))
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Cannot delete fee record with payments. Please contact administrator.", res.Body["error"])
	assert.Equal(t, http.StatusOK, f.api.Get(fmt.Sprintf("/api/fees/%d", paid)).Status)

	res = f.api.Delete(fmt.Sprintf("/api/fees/%d", unpaid))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Fee record deleted successfully", res.Body["message"])
	assert.Equal(t, http.StatusNotFound, f.api.Get(fmt.Sprintf("/api/fees/%d", unpaid)).Status)
	assert.Equal(t, http.StatusNotFound, f.api.Delete(fmt.Sprintf("/api/fees/%d", unpaid)).Status)
}

func TestUpdateFee(t *testing.T) {
	f := newFeeFixture(t)
	id := f.createFee(t, "Tuition Fee", 1000)
	f.createFee(t, "Library", 300)
	path := fmt.Sprintf("/api/fees/%d", id)

	require.Equal(t, http.StatusOK, f.api.Post(path+"/payment", map[string]any{"paymentAmount": 400}).Status)

	res := f.api.Put(path, map[string]any{"amountDue": 1500})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Fee record updated successfully", res.Body["message"])
	fee := testutil.Obj(t, res.Body, "fee")
	assert.Equal(t, float64(1100), fee["balance"])

	res = f.api.Put(path, map[string]any{"amountDue": 399})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = f.api.Put(path, map[string]any{"feeType": "Library"})
	assert.Equal(t, http.StatusConflict, res.Status)

	res = f.api.Put(path, map[string]any{"balance": 0})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Field not allowed: balance", res.Body["error"])

	res = f.api.Put(path, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "No valid fields to update", res.Body["error"])
}

func TestListFeesFiltersAndPaginates(t *testing.T) {
	f := newFeeFixture(t)
	for i := 0; i < 5; i++ {
		f.createFee(t, fmt.Sprintf("Fee %d", i), 100)
	}
	first := f.createFee(t, "Transport", 100)
	require.Equal(t, http.StatusOK, f.api.Post(fmt.Sprintf("/api/fees/%d/payment", first), map[string]any{"paymentAmount": 100}).Status)

	res := f.api.Get("/api/fees?page=2&limit=4")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, testutil.Items(t, res.Body), 2)
	pg := testutil.Obj(t, res.Body, "pagination")
	assert.Equal(t, float64(6), pg["total"])
	assert.Equal(t, float64(2), pg["pages"])
	assert.Equal(t, float64(2), pg["page"])

	res = f.api.Get("/api/fees?paymentStatus=paid")
	items := testutil.Items(t, res.Body)
	require.Len(t, items, 1)
	assert.Equal(t, "Transport", items[0].(map[string]any)["feeType"])

	res = f.api.Get("/api/fees?paymentStatus=unpaid&search=fee")
	assert.Len(t, testutil.Items(t, res.Body), 5)

	res = f.api.Get("/api/fees?classId=abc")
	assert.Empty(t, testutil.Items(t, res.Body))
	assert.Equal(t, float64(0), testutil.Obj(t, res.Body, "pagination")["pages"])

	res = f.api.Get(fmt.Sprintf("/api/fees/student/%d?status=pending", f.studentID))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, testutil.Items(t, res.Body), 5)
}

func TestFeeStats(t *testing.T) {
	f := newFeeFixture(t)
	a := f.createFee(t, "Tuition Fee", 10000)
	f.createFee(t, "Library", 500)
	require.Equal(t, http.StatusOK, f.api.Post(fmt.Sprintf("/api/fees/%d/payment", a), map[string]any{"paymentAmount": 4000}).Status)

	res := f.api.Get("/api/fees/stats/overview")
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	overall := testutil.Obj(t, res.Body, "overall")
	assert.Equal(t, float64(2), overall["totalRecords"])
	assert.Equal(t, float64(10500), overall["totalDue"])
	assert.Equal(t, float64(4000), overall["totalPaid"])
	assert.Equal(t, float64(38), overall["collectionPercentage"])

	status := testutil.Obj(t, res.Body, "paymentStatus")
	assert.Equal(t, float64(0), status["paid"])
	assert.Equal(t, float64(1), status["partial"])
	assert.Equal(t, float64(1), status["unpaid"])

	classes := res.Body["classWiseStats"].([]any)
	require.Len(t, classes, 1)
	assert.Equal(t, "Grade 8 - A", classes[0].(map[string]any)["className"])
	assert.Equal(t, float64(1), classes[0].(map[string]any)["studentCount"])

	recent := testutil.Obj(t, res.Body, "recentPayments")
	assert.Equal(t, float64(4000), recent["amount"])
	assert.Equal(t, float64(1), recent["count"])

	res = f.api.Get("/api/fees/stats/overview?academicYear=1999")
	overall = testutil.Obj(t, res.Body, "overall")
	assert.Equal(t, float64(0), overall["totalRecords"])
	assert.Equal(t, float64(0), overall["collectionPercentage"])
}

func TestExportFees(t *testing.T) {
	f := newFeeFixture(t)
	f.createFee(t, "Tuition Fee", 10000)

	res := f.api.Get("/api/fees/export")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Contains(t, res.Header["Content-Type"], "spreadsheetml")
	assert.Contains(t, res.Header["Content-Disposition"], ".xlsx")
	assert.Equal(t, []byte("PK"), res.Raw[:2])
}

func TestFeeRoutesRequireToken(t *testing.T) {
	f := newFeeFixture(t)
	f.api.Token = ""
	res := f.api.Get("/api/fees")
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Access token required", res.Body["error"])

	f.api.Token = "not-a-jwt"
	res = f.api.Get("/api/fees")
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Invalid token", res.Body["error"])
}
