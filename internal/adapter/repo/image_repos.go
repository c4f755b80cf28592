package repo

import (
	"context"
	"time"

	"artify/internal/domain"
	"artify/internal/infra"
	"artify/internal/sqlinline"
)

// ResultImageRepositoryPG stores finished portrait bytes keyed by order and index.
type ResultImageRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewResultImageRepository(sql infra.SQLExecutor) *ResultImageRepositoryPG {
	return &ResultImageRepositoryPG{sql: sql}
}

func (r *ResultImageRepositoryPG) Save(ctx context.Context, orderID string, index int, contentType string, data []byte) error {
	_, err := r.sql.Exec(ctx, sqlinline.QUpsertResultImage, orderID, index, contentType, data)
	return err
}

func (r *ResultImageRepositoryPG) Get(ctx context.Context, orderID string, index int) (string, []byte, error) {
	var (
		contentType string
		data        []byte
	)
	row := r.sql.QueryRow(ctx, sqlinline.QGetResultImage, orderID, index)
	if err := row.Scan(&contentType, &data); err != nil {
		if infra.IsNoRows(err) {
			return "", nil, domain.ErrNotFound
		}
		return "", nil, err
	}
	return contentType, data, nil
}

func (r *ResultImageRepositoryPG) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteExpiredResultImages, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SourceImageRepositoryPG stores the customer's uploaded photo so fulfillment
// can outlive the upload host.
type SourceImageRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewSourceImageRepository(sql infra.SQLExecutor) *SourceImageRepositoryPG {
	return &SourceImageRepositoryPG{sql: sql}
}

func (r *SourceImageRepositoryPG) Save(ctx context.Context, orderID, contentType string, data []byte) error {
	_, err := r.sql.Exec(ctx, sqlinline.QUpsertSourceImage, orderID, contentType, data)
	return err
}

func (r *SourceImageRepositoryPG) Get(ctx context.Context, orderID string) (string, []byte, error) {
	var (
		contentType string
		data        []byte
	)
	row := r.sql.QueryRow(ctx, sqlinline.QGetSourceImage, orderID)
	if err := row.Scan(&contentType, &data); err != nil {
		if infra.IsNoRows(err) {
			return "", nil, domain.ErrNotFound
		}
		return "", nil, err
	}
	return contentType, data, nil
}

func (r *SourceImageRepositoryPG) Exists(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	row := r.sql.QueryRow(ctx, sqlinline.QHasSourceImage, orderID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var (
	_ domain.ResultImageRepository = (*ResultImageRepositoryPG)(nil)
	_ domain.SourceImageRepository = (*SourceImageRepositoryPG)(nil)
)
