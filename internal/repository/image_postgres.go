package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
)

const imageColumns = `id, name, width, height, url, url_resize, date_added, date_identified, ai_labels, ai_text`

const (
	selectImageSQL = `SELECT ` + imageColumns + ` FROM images WHERE id = $1`

	selectImagesSQL = `SELECT ` + imageColumns + ` FROM images ORDER BY id DESC`

	insertImageSQL = `INSERT INTO images (name, url, ai_labels, ai_text) VALUES ($1, $2, $3, $4) RETURNING id`

	deleteImageSQL = `DELETE FROM images WHERE id = $1`
)

// PostgresImageRepository reads and writes the images table.
type PostgresImageRepository struct {
	db  DBTX
	log *zerolog.Logger
}

func NewPostgresImageRepository(db DBTX, log *zerolog.Logger) *PostgresImageRepository {
	return &PostgresImageRepository{db: db, log: log}
}

// scanImage maps one row, in column order, onto a model.Image.
func scanImage(row pgx.Row) (*model.Image, error) {
	var (
		img            model.Image
		width, height  pgtype.Int4
		url, urlResize pgtype.Text
		added, ident   pgtype.Date
	)

	err := row.Scan(
		&img.ID,
		&img.Name,
		&width,
		&height,
		&url,
		&urlResize,
		&added,
		&ident,
		&img.AILabels,
		&img.AIText,
	)
	if err != nil {
		return nil, err
	}

	if width.Valid {
		img.Width = &width.Int32
	}
	if height.Valid {
		img.Height = &height.Int32
	}
	if url.Valid {
		img.URL = &url.String
	}
	if urlResize.Valid {
		img.URLResize = &urlResize.String
	}
	if added.Valid {
		img.DateAdded = model.NewDate(added.Time)
	}
	if ident.Valid {
		img.DateIdentified = model.NewDate(ident.Time)
	}
	if img.AILabels == nil {
		img.AILabels = []string{}
	}
	if img.AIText == nil {
		img.AIText = []string{}
	}

	return &img, nil
}

// FetchOne returns the image with the given id, or ErrNotFound.
func (r *PostgresImageRepository) FetchOne(ctx context.Context, id int64) (*model.Image, error) {
	img, err := scanImage(r.db.QueryRow(ctx, selectImageSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("image %d: %w", id, ErrNotFound)
		}
		r.log.Error().Err(err).Int64("image_id", id).Msg("failed to fetch image from postgres")
		return nil, fmt.Errorf("fetch image %d: %w", id, err)
	}

	return img, nil
}

// FetchAll returns every image, newest id first.
func (r *PostgresImageRepository) FetchAll(ctx context.Context) ([]model.Image, error) {
	rows, err := r.db.Query(ctx, selectImagesSQL)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to query images from postgres")
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	images := []model.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, *img)
	}

	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Msg("failed to iterate images from postgres")
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	return images, nil
}

// Insert stores a new image in its own transaction and returns the
// assigned id. Label arrays are bound as text[] parameters.
func (r *PostgresImageRepository) Insert(ctx context.Context, in model.NewImage) (int64, error) {
	aiLabels, aiText := in.AILabels, in.AIText
	if aiLabels == nil {
		aiLabels = []string{}
	}
	if aiText == nil {
		aiText = []string{}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin insert image: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, insertImageSQL, in.Name, in.URL, aiLabels, aiText).Scan(&id); err != nil {
		r.rollback(ctx, tx, err, "insert")
		return 0, fmt.Errorf("insert image: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error().Err(err).Msg("failed to commit image insert")
		return 0, fmt.Errorf("commit insert image: %w", err)
	}

	return id, nil
}

// Delete removes the image with the given id. Deleting a missing id is
// not an error.
func (r *PostgresImageRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete image: %w", err)
	}

	if _, err := tx.Exec(ctx, deleteImageSQL, id); err != nil {
		r.rollback(ctx, tx, err, "delete")
		return fmt.Errorf("delete image %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error().Err(err).Int64("image_id", id).Msg("failed to commit image delete")
		return fmt.Errorf("commit delete image %d: %w", id, err)
	}

	return nil
}

func (r *PostgresImageRepository) rollback(ctx context.Context, tx pgx.Tx, cause error, op string) {
	event := r.log.Error().Err(cause).Str("operation", op)
	if err := tx.Rollback(ctx); err != nil {
		event = event.AnErr("rollback_error", err)
	}
	event.Msg("rolled back image transaction")
}
