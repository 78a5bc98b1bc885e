package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academics "schoolku_backend/internals/features/school/academics/model"
	d "schoolku_backend/internals/features/school/syllabus/syllabus/dto"
	m "schoolku_backend/internals/features/school/syllabus/syllabus/model"
	helper "schoolku_backend/internals/helpers"
)

const progressColumns = "COUNT(*) AS units, COALESCE(AVG(syllabus.completion_percentage), 0) AS average"

type progressRow struct {
	Status  string
	ID      int64
	Units   int64
	Average float64
}

/* =========================
   Stats
   GET /api/syllabus/stats/overview
   ========================= */

func (ctl *SyllabusController) Stats(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	where := statsFilters.Build(c.Queries())
	base := func() *gorm.DB { return where.Apply(db.Model(&m.SyllabusModel{})) }

	out := d.SyllabusStats{
		StatusDistribution:  []d.StatusProgress{},
		ClassWiseProgress:   []d.ClassProgress{},
		SubjectWiseProgress: []d.SubjectProgress{},
	}

	var overall progressRow
	if err := base().Select(progressColumns).Scan(&overall).Error; err != nil {
		return helper.Internal(err, "syllabus totals")
	}
	out.Overall = d.OverallProgress{TotalUnits: overall.Units, AverageProgress: helper.RoundHalfUp(overall.Average)}

	var byStatus []progressRow
	if err := base().Select("syllabus.completion_status AS status, " + progressColumns).
		Group("syllabus.completion_status").
		Order("syllabus.completion_status ASC").
		Scan(&byStatus).Error; err != nil {
		return helper.Internal(err, "syllabus status distribution")
	}
	for _, r := range byStatus {
		out.StatusDistribution = append(out.StatusDistribution, d.StatusProgress{
			Status:          r.Status,
			Count:           r.Units,
			AverageProgress: helper.RoundHalfUp(r.Average),
		})
	}

	var byClass []progressRow
	if err := base().Select("syllabus.class_id AS id, " + progressColumns).
		Group("syllabus.class_id").
		Order("syllabus.class_id ASC").
		Scan(&byClass).Error; err != nil {
		return helper.Internal(err, "syllabus class progress")
	}
	classNames, err := lookupClasses(db, ids(byClass))
	if err != nil {
		return helper.Internal(err, "class names")
	}
	for _, r := range byClass {
		name, ok := classNames[r.ID]
		if !ok {
			name = "Unknown"
		}
		out.ClassWiseProgress = append(out.ClassWiseProgress, d.ClassProgress{
			ClassID:         r.ID,
			ClassName:       name,
			AverageProgress: helper.RoundHalfUp(r.Average),
			UnitCount:       r.Units,
		})
	}

	var bySubject []progressRow
	if err := base().Select("syllabus.subject_id AS id, " + progressColumns).
		Group("syllabus.subject_id").
		Order("syllabus.subject_id ASC").
		Scan(&bySubject).Error; err != nil {
		return helper.Internal(err, "syllabus subject progress")
	}
	subjects, err := lookupSubjects(db, ids(bySubject))
	if err != nil {
		return helper.Internal(err, "subject names")
	}
	for _, r := range bySubject {
		sp := d.SubjectProgress{
			SubjectID:       r.ID,
			SubjectName:     "Unknown",
			AverageProgress: helper.RoundHalfUp(r.Average),
			UnitCount:       r.Units,
		}
		if s, ok := subjects[r.ID]; ok {
			sp.SubjectName = s.SubjectName
			sp.SubjectCode = s.SubjectCode
		}
		out.SubjectWiseProgress = append(out.SubjectWiseProgress, sp)
	}

	return helper.JsonOK(c, out)
}

func ids(rows []progressRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func lookupClasses(db *gorm.DB, classIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(classIDs))
	if len(classIDs) == 0 {
		return out, nil
	}
	var rows []academics.ClassBrief
	if err := db.Select("class_id", "class_name", "section").Where("class_id IN ?", classIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.ClassName + " - " + r.Section
	}
	return out, nil
}

func lookupSubjects(db *gorm.DB, subjectIDs []int64) (map[int64]academics.SubjectBrief, error) {
	out := make(map[int64]academics.SubjectBrief, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return out, nil
	}
	var rows []academics.SubjectBrief
	if err := db.Select("subject_id", "subject_name", "subject_code").Where("subject_id IN ?", subjectIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}
