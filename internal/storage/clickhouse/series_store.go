package clickhouse

import (
	"context"
	"fmt"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// NormalizedSeriesStore implements storage.NormalizedSeriesStore using ClickHouse.
type NormalizedSeriesStore struct {
	conn *Conn
}

// NewNormalizedSeriesStore creates a new NormalizedSeriesStore.
func NewNormalizedSeriesStore(conn *Conn) *NormalizedSeriesStore {
	return &NormalizedSeriesStore{conn: conn}
}

// Compile-time interface check.
var _ storage.NormalizedSeriesStore = (*NormalizedSeriesStore)(nil)

// ReplaceByTicker atomically replaces the ticker's normalized series.
// Uses a lightweight delete followed by a batch insert; the analysis engine
// re-emits the full series per ticker so partial updates never occur.
func (s *NormalizedSeriesStore) ReplaceByTicker(ctx context.Context, ticker string, points []*domain.NormalizedSeriesPoint) error {
	if err := s.conn.Exec(ctx, `DELETE FROM normalized_series WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("delete series for ticker: %w", err)
	}

	if len(points) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO normalized_series (
			ticker, ex_date, normalized_div, annualized, frequency_num
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			p.Ticker, p.ExDate, p.NormalizedDiv, p.Annualized, uint16(p.FrequencyNum),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByTicker retrieves the ticker's series, ordered by ex-date ASC.
func (s *NormalizedSeriesStore) GetByTicker(ctx context.Context, ticker string) ([]*domain.NormalizedSeriesPoint, error) {
	query := `
		SELECT ticker, ex_date, normalized_div, annualized, frequency_num
		FROM normalized_series FINAL
		WHERE ticker = ?
		ORDER BY ex_date ASC
	`

	rows, err := s.conn.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("get series by ticker: %w", err)
	}
	defer rows.Close()

	var result []*domain.NormalizedSeriesPoint
	for rows.Next() {
		var p domain.NormalizedSeriesPoint
		var freq uint16

		if err := rows.Scan(&p.Ticker, &p.ExDate, &p.NormalizedDiv, &p.Annualized, &freq); err != nil {
			return nil, fmt.Errorf("scan series row: %w", err)
		}

		p.FrequencyNum = int(freq)
		p.ExDate = domain.Day(p.ExDate)
		result = append(result, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series rows: %w", err)
	}

	return result, nil
}
