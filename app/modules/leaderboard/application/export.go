package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Leaderboard"

// ExportStandingsXLSX renders an event's standings as a spreadsheet.
func (s *LeaderboardService) ExportStandingsXLSX(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	return withTelemetry(s, ctx, "ExportStandingsXLSX", func(ctx context.Context) ([]byte, error) {
		entries, err := s.repo.GetEventStandings(ctx, eventID)
		if err != nil {
			return nil, err
		}

		f := excelize.NewFile()
		defer f.Close()

		index, err := f.NewSheet(exportSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		f.SetActiveSheet(index)
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}

		header := []any{"Rank", "User", "Total Score", "Games Completed"}
		if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		for i, e := range entries {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to locate row: %w", err)
			}
			row := []any{e.Rank, e.UserID, e.TotalScore, e.GamesCompleted}
			if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize workbook: %w", err)
		}
		return buf.Bytes(), nil
	})
}

// RenderStandingsChart renders an event's standings as a PNG bar chart of
// total scores, capped at the top twenty participants.
func (s *LeaderboardService) RenderStandingsChart(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	return withTelemetry(s, ctx, "RenderStandingsChart", func(ctx context.Context) ([]byte, error) {
		entries, err := s.repo.GetEventStandings(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, ErrNoStandings
		}
		if len(entries) > 20 {
			entries = entries[:20]
		}

		bars := make([]chart.Value, len(entries))
		for i, e := range entries {
			bars[i] = chart.Value{
				Label: e.UserID,
				Value: float64(e.TotalScore),
			}
		}

		graph := chart.BarChart{
			Title:    "Event Standings",
			Width:    1024,
			Height:   512,
			BarWidth: 40,
			Bars:     bars,
		}

		var buf bytes.Buffer
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("failed to render chart: %w", err)
		}
		return buf.Bytes(), nil
	})
}
