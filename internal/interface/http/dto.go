package http

import (
	"github.com/college-hub/college-schedule/internal/domain/schedule"
	"github.com/college-hub/college-schedule/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE DTOs
// ══════════════════════════════════════════════════════════════════════════════

// DayDTO - один день расписания.
type DayDTO struct {
	Date        string      `json:"date"`
	WeekdayName string      `json:"weekdayName"`
	Lessons     []LessonDTO `json:"lessons"`
}

// LessonDTO - одна пара со всеми частями группы.
type LessonDTO struct {
	LessonNumber int      `json:"lessonNumber"`
	TimeRange    string   `json:"timeRange"`
	Parts        PartsDTO `json:"parts"`
}

// PartsDTO всегда содержит все три ключа; отсутствующая часть - null.
type PartsDTO struct {
	Full      *LessonDetailDTO `json:"FULL"`
	SubgroupA *LessonDetailDTO `json:"SUBGROUP_A"`
	SubgroupB *LessonDetailDTO `json:"SUBGROUP_B"`
}

// LessonDetailDTO - содержимое занятия для одной части группы.
type LessonDetailDTO struct {
	Subject         string `json:"subject"`
	TeacherFullName string `json:"teacherFullName"`
	TeacherPosition string `json:"teacherPosition"`
	Classroom       string `json:"classroom"`
	Building        string `json:"building"`
	Address         string `json:"address"`
}

// GroupDTO - элемент списка групп.
type GroupDTO struct {
	GroupID   int    `json:"groupId"`
	GroupName string `json:"groupName"`
	Course    int    `json:"course"`
	Specialty string `json:"specialty"`
}

// ErrorDTO - тело ответа об ошибке.
type ErrorDTO struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// ══════════════════════════════════════════════════════════════════════════════
// MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func toDayDTOs(days []schedule.CalendarDay) []DayDTO {
	out := make([]DayDTO, 0, len(days))
	for _, d := range days {
		lessons := make([]LessonDTO, 0, len(d.Lessons))
		for _, l := range d.Lessons {
			lessons = append(lessons, LessonDTO{
				LessonNumber: l.Number,
				TimeRange:    l.TimeRange,
				Parts: PartsDTO{
					Full:      toDetailDTO(l.Parts.Full),
					SubgroupA: toDetailDTO(l.Parts.SubgroupA),
					SubgroupB: toDetailDTO(l.Parts.SubgroupB),
				},
			})
		}
		out = append(out, DayDTO{
			Date:        timeutil.FormatDateStr(d.Date),
			WeekdayName: d.Weekday,
			Lessons:     lessons,
		})
	}
	return out
}

func toDetailDTO(d *schedule.LessonDetail) *LessonDetailDTO {
	if d == nil {
		return nil
	}
	return &LessonDetailDTO{
		Subject:         d.Subject,
		TeacherFullName: d.TeacherFullName,
		TeacherPosition: d.TeacherPosition,
		Classroom:       d.Classroom,
		Building:        d.Building,
		Address:         d.Address,
	}
}

func toGroupDTOs(groups []schedule.GroupSummary) []GroupDTO {
	out := make([]GroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupDTO{
			GroupID:   int(g.ID),
			GroupName: g.Name,
			Course:    g.Course,
			Specialty: g.Specialty,
		})
	}
	return out
}
