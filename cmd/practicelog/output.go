package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"practicelog/internal/calendar"
	"practicelog/internal/format"
	"practicelog/internal/models"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeTopicList(topics []models.Topic) error {
	for _, topic := range topics {
		if err := writePlain("%d. %s  (%s)\n", topic.TopicNumber, topic.Title, topic.ID); err != nil {
			return err
		}
	}
	return nil
}

func formatGoalLine(goal models.Goal) string {
	mark := "○"
	if goal.IsComplete {
		mark = "●"
	}
	return fmt.Sprintf("%s %s %s  (%s)", mark, goal.GoalNumber, goal.Description, goal.ID)
}

var heatmapGlyphs = [...]string{"·", "░", "▒", "▓", "█"}

// renderHeatmap prints seven weekday rows with one column per week.
func renderHeatmap(w io.Writer, hm *calendar.Heatmap) error {
	header := make([]byte, len(hm.Weeks))
	for i := range header {
		header[i] = ' '
	}
	for _, m := range hm.Months {
		if m.Week < len(header) && m.Label != "" {
			header[m.Week] = m.Label[0]
		}
	}
	if _, err := fmt.Fprintf(w, "%d    %s\n", hm.Year, strings.TrimRight(string(header), " ")); err != nil {
		return err
	}

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		var row strings.Builder
		for _, week := range hm.Weeks {
			if int(weekday) >= len(week) || week[weekday] == nil {
				row.WriteString(" ")
				continue
			}
			row.WriteString(heatmapGlyphs[week[weekday].Level])
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", weekday.String()[:3], strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d logs\n", hm.Total)
	return err
}
