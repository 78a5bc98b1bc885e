package controller

import (
	"schoolku_backend/internals/helpers/query"
)

const (
	DefaultLimit = 50
	DetailCap    = 50

	classOrder = "classes.class_name ASC, classes.section ASC, classes.class_id ASC"
)

var classFilters = query.FilterSet{
	Exact: []query.Exact{
		{Param: "academicYear", Column: "classes.academic_year"},
		{Param: "active", Column: "classes.active", Kind: query.Bool},
	},
	Search: []string{"classes.class_name", "classes.section"},
}

/* ===== relation tables ===== */

var listRelations = []query.Relation{
	{Name: "ClassTeacher", Columns: []string{"teacher_id", "name", "email", "phone_number"}},
}

var detailRelations = []query.Relation{
	{Name: "ClassTeacher", Columns: []string{"teacher_id", "name", "email", "phone_number", "qualification"}},
}

var (
	studentNameEmail = query.Relation{Name: "Student", Columns: []string{"student_id", "name", "email"}}
	teacherName      = query.Relation{Name: "Teacher", Columns: []string{"teacher_id", "name"}}
	subjectNameCode  = query.Relation{Name: "Subject", Columns: []string{"subject_id", "subject_name", "subject_code"}}
)

func studentsOf(classID int64) query.ListQuery {
	return query.ListQuery{
		Where: query.Predicate{query.Where("class_id = ?", classID)},
		Select: []string{
			"student_id", "name", "email", "phone", "father_name", "mother_name",
			"parent_contact", "class_id", "status",
		},
		Order: "name ASC, student_id ASC",
	}
}

func attendanceOf(classID int64) query.ListQuery {
	return query.ListQuery{
		Where:     query.Predicate{query.Where("class_id = ?", classID)},
		Order:     "date DESC, attendance_id DESC",
		Relations: []query.Relation{studentNameEmail, teacherName},
		Limit:     DetailCap,
	}
}

func marksOf(classID int64) query.ListQuery {
	return query.ListQuery{
		Where:     query.Predicate{query.Where("class_id = ?", classID)},
		Order:     "entry_date DESC, marks_id DESC",
		Relations: []query.Relation{studentNameEmail, subjectNameCode, teacherName},
		Limit:     DetailCap,
	}
}

func feesOf(classID int64) query.ListQuery {
	return query.ListQuery{
		Where:     query.Predicate{query.Where("class_id = ?", classID)},
		Order:     "created_at DESC, fee_id DESC",
		Relations: []query.Relation{studentNameEmail},
	}
}

func syllabusOf(classID int64) query.ListQuery {
	return query.ListQuery{
		Where:     query.Predicate{query.Where("class_id = ?", classID)},
		Order:     "last_updated DESC, syllabus_id DESC",
		Relations: []query.Relation{subjectNameCode, teacherName},
	}
}
