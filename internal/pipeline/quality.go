package pipeline

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// BuildQualityPivot groups contacts by course and counts each normalized
// status category per course. Contacts without a course value are excluded
// entirely. Low quality sums Not Interested and Not Qualified; good quality
// sums Cold, Warm, and Hot.
//
// Statuses outside the closed category set are tallied in Other but excluded
// from Total and from both percentages: a legacy label nobody has mapped yet
// should be visible without skewing the quality split. Percentages are
// rounded to one decimal place. Rows sort by Total descending, then course
// name ascending for a stable order.
func BuildQualityPivot(contacts []model.Contact) []model.QualityRow {
	byCourse := make(map[string]*model.QualityRow)
	var order []string

	for _, c := range contacts {
		course := strings.TrimSpace(c.Course)
		if course == "" {
			continue
		}
		row, ok := byCourse[course]
		if !ok {
			row = &model.QualityRow{
				Course: course,
				Counts: make(map[model.StatusCategory]int),
			}
			byCourse[course] = row
			order = append(order, course)
		}
		if c.LeadStatus.Known() {
			row.Counts[c.LeadStatus.Category]++
		} else {
			row.Other++
		}
	}

	rows := make([]model.QualityRow, 0, len(order))
	for _, course := range order {
		row := byCourse[course]
		row.LowQualityCount = row.Counts[model.StatusNotInterested] + row.Counts[model.StatusNotQualified]
		row.GoodQualityCount = row.Counts[model.StatusCold] + row.Counts[model.StatusWarm] + row.Counts[model.StatusHot]
		for _, cat := range model.AllStatusCategories() {
			row.Total += row.Counts[cat]
		}
		if row.Total > 0 {
			row.LowQualityPct = roundPct(float64(row.LowQualityCount) / float64(row.Total) * 100)
			row.GoodQualityPct = roundPct(float64(row.GoodQualityCount) / float64(row.Total) * 100)
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Course < rows[j].Course
	})

	return rows
}

func roundPct(x float64) float64 {
	return math.Round(x*10) / 10
}
