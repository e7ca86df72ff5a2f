package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mahfuzul873/m873/internal/model"
	"github.com/mahfuzul873/m873/internal/pkg/dbutil"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
)

type OTPRepo struct {
	db *sql.DB
}

func NewOTPRepo(db *sql.DB) *OTPRepo {
	return &OTPRepo{db: db}
}

// Issue stores a fresh code for the email, replacing any previous row and
// clearing the consumed flag. One active code per email.
func (r *OTPRepo) Issue(ctx context.Context, email, code string, ctime, expiresAt int64) error {
	sqlStr := "INSERT INTO owner_otps (email, code, used, ctime, expires_at) VALUES (?, ?, FALSE, ?, ?) " +
		"ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, used = FALSE, ctime = EXCLUDED.ctime, expires_at = EXCLUDED.expires_at"
	args := []interface{}{email, code, ctime, expiresAt}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *OTPRepo) Latest(ctx context.Context, email string) (*model.OwnerOTP, error) {
	where := map[string]interface{}{"email": email}
	sqlStr, args, err := builder.BuildSelect("owner_otps", where, []string{"email", "code", "used", "ctime", "expires_at"})
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
	var otp model.OwnerOTP
	if err := rows.Scan(&otp.Email, &otp.Code, &otp.Used, &otp.Ctime, &otp.ExpiresAt); err != nil {
		return nil, err
	}
	return &otp, nil
}

// Consume marks the code used if it is the current unconsumed, unexpired code
// for the email. The single UPDATE makes verification first-wins.
func (r *OTPRepo) Consume(ctx context.Context, email, code string, now int64) (bool, error) {
	sqlStr := "UPDATE owner_otps SET used = TRUE WHERE email = ? AND code = ? AND used = FALSE AND expires_at > ?"
	args := []interface{}{email, code, now}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *OTPRepo) PurgeExpired(ctx context.Context, before int64) (int64, error) {
	where := map[string]interface{}{"expires_at <": before}
	sqlStr, args, err := builder.BuildDelete("owner_otps", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
