package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mahfuzul873/m873/internal/pkg/dbutil"
)

type UserRoleRepo struct {
	db *sql.DB
}

func NewUserRoleRepo(db *sql.DB) *UserRoleRepo {
	return &UserRoleRepo{db: db}
}

func (r *UserRoleRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	where := map[string]interface{}{"user_id": userID, "role": role}
	sqlStr, args, err := builder.BuildSelect("user_roles", where, []string{"user_id"})
	if err != nil {
		return false, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	return rows.Next(), rows.Err()
}

func (r *UserRoleRepo) Grant(ctx context.Context, userID, role string, ctime int64) error {
	sqlStr := "INSERT INTO user_roles (user_id, role, ctime) VALUES (?, ?, ?) ON CONFLICT (user_id, role) DO NOTHING"
	args := []interface{}{userID, role, ctime}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
