package controller

import (
	"schoolku_backend/internals/helpers/query"
)

const (
	DefaultLimit = 50
	ExportCap    = 10_000

	feeOrder = "fees.created_at DESC, fees.fee_id DESC"
)

var paymentStatusScopes = map[string]query.Scope{
	"paid":    query.Where("fees.balance = 0"),
	"partial": query.Where("fees.amount_paid > 0 AND fees.balance > 0"),
	"unpaid":  query.Where("fees.amount_paid = 0"),
	"pending": query.Where("fees.balance > 0"),
}

func statusScopes(keys ...string) map[string]query.Scope {
	out := make(map[string]query.Scope, len(keys))
	for _, k := range keys {
		out[k] = paymentStatusScopes[k]
	}
	return out
}

var feeFilters = query.FilterSet{
	Exact: []query.Exact{
		{Param: "studentId", Column: "fees.student_id", Kind: query.Int},
		{Param: "classId", Column: "fees.class_id", Kind: query.Int},
		{Param: "feeType", Column: "fees.fee_type"},
		{Param: "academicYear", Column: "fees.academic_year"},
	},
	Search:      []string{"fees.fee_type"},
	StatusParam: "paymentStatus",
	Status:      statusScopes("paid", "partial", "unpaid"),
}

var studentFeeFilters = query.FilterSet{
	Exact: []query.Exact{
		{Param: "academicYear", Column: "fees.academic_year"},
		{Param: "feeType", Column: "fees.fee_type"},
	},
	StatusParam: "status",
	Status:      statusScopes("paid", "pending", "partial", "unpaid"),
}

var statsFilters = query.FilterSet{
	Exact: []query.Exact{
		{Param: "academicYear", Column: "fees.academic_year"},
		{Param: "classId", Column: "fees.class_id", Kind: query.Int},
		{Param: "feeType", Column: "fees.fee_type"},
	},
}

/* ===== relation tables ===== */

var (
	studentListColumns = []string{
		"student_id", "name", "email", "phone", "father_name", "mother_name", "parent_contact",
	}

	listRelations = []query.Relation{
		{Name: "Student", Columns: studentListColumns},
		{Name: "Class", Columns: []string{"class_id", "class_name", "section", "academic_year"}},
	}

	detailRelations = []query.Relation{
		{Name: "Student", Columns: append(append([]string{}, studentListColumns...), "address")},
		{Name: "Class", Columns: []string{"class_id", "class_name", "section", "academic_year"}},
	}

	studentRouteRelations = []query.Relation{
		{Name: "Class", Columns: []string{"class_id", "class_name", "section"}},
	}

	// create / update / payment echo
	writeRelations = []query.Relation{
		{Name: "Student", Columns: []string{"student_id", "name", "email"}},
		{Name: "Class", Columns: []string{"class_id", "class_name", "section"}},
	}
)
