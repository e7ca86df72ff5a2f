package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mahfuzul873/m873/internal/model"
	"github.com/mahfuzul873/m873/internal/pkg/dbutil"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
)

var featureFields = []string{"id", "title", "description", "status", "sort_order", "link", "ctime", "mtime"}

type FeatureRepo struct {
	db *sql.DB
}

func NewFeatureRepo(db *sql.DB) *FeatureRepo {
	return &FeatureRepo{db: db}
}

func (r *FeatureRepo) Create(ctx context.Context, feature *model.Feature) error {
	data := map[string]interface{}{
		"id":          feature.ID,
		"title":       feature.Title,
		"description": feature.Description,
		"status":      feature.Status,
		"sort_order":  feature.SortOrder,
		"link":        feature.Link,
		"ctime":       feature.Ctime,
		"mtime":       feature.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("features", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *FeatureRepo) Get(ctx context.Context, id string) (*model.Feature, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("features", where, featureFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var feature model.Feature
	if err := scanFeature(rows, &feature); err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *FeatureRepo) List(ctx context.Context, status string) ([]model.Feature, error) {
	where := map[string]interface{}{"_orderby": "sort_order asc, ctime asc"}
	if status != "" {
		where["status"] = status
	}
	sqlStr, args, err := builder.BuildSelect("features", where, featureFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	features := make([]model.Feature, 0)
	for rows.Next() {
		var feature model.Feature
		if err := scanFeature(rows, &feature); err != nil {
			return nil, err
		}
		features = append(features, feature)
	}
	return features, rows.Err()
}

func (r *FeatureRepo) Update(ctx context.Context, feature *model.Feature) error {
	where := map[string]interface{}{"id": feature.ID}
	update := map[string]interface{}{
		"title":       feature.Title,
		"description": feature.Description,
		"status":      feature.Status,
		"sort_order":  feature.SortOrder,
		"link":        feature.Link,
		"mtime":       feature.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("features", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *FeatureRepo) Delete(ctx context.Context, id string) error {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildDelete("features", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func scanFeature(rows *sql.Rows, feature *model.Feature) error {
	return rows.Scan(&feature.ID, &feature.Title, &feature.Description, &feature.Status,
		&feature.SortOrder, &feature.Link, &feature.Ctime, &feature.Mtime)
}
