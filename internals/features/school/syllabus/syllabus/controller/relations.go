package controller

import (
	"schoolku_backend/internals/helpers/query"
)

const (
	DefaultLimit = 50

	syllabusOrder = "syllabus.last_updated DESC, syllabus.syllabus_id DESC"
)

var syllabusFilters = query.FilterSet{
	Exact: []query.Exact{
		{Param: "classId", Column: "syllabus.class_id", Kind: query.Int},
		{Param: "subjectId", Column: "syllabus.subject_id", Kind: query.Int},
		{Param: "teacherId", Column: "syllabus.teacher_id", Kind: query.Int},
		{Param: "completionStatus", Column: "syllabus.completion_status"},
	},
	Search: []string{"syllabus.unit_name", "syllabus.current_topic"},
}

var statsFilters = query.FilterSet{
	Exact: []query.Exact{
		{Param: "classId", Column: "syllabus.class_id", Kind: query.Int},
		{Param: "subjectId", Column: "syllabus.subject_id", Kind: query.Int},
		{Param: "teacherId", Column: "syllabus.teacher_id", Kind: query.Int},
	},
}

/* ===== relation tables ===== */

var listRelations = []query.Relation{
	{Name: "Class", Columns: []string{"class_id", "class_name", "section", "academic_year"}},
	{Name: "Subject", Columns: []string{"subject_id", "subject_name", "subject_code"}},
	{Name: "Teacher", Columns: []string{"teacher_id", "name", "email"}},
}

var detailRelations = []query.Relation{
	{Name: "Class", Columns: []string{"class_id", "class_name", "section", "academic_year"}},
	{Name: "Subject", Columns: []string{"subject_id", "subject_name", "subject_code", "max_marks_per_exam"}},
	{Name: "Teacher", Columns: []string{"teacher_id", "name", "email", "qualification"}},
}

var writeRelations = []query.Relation{
	{Name: "Class", Columns: []string{"class_id", "class_name", "section"}},
	{Name: "Subject", Columns: []string{"subject_id", "subject_name", "subject_code"}},
	{Name: "Teacher", Columns: []string{"teacher_id", "name"}},
}
