package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "campus-lms/backend/pkg/errors"
)

// uniqueViolationCode PostgreSQL unique_violation
const uniqueViolationCode = "23505"

// translateError 将存储层唯一约束冲突归类为 ErrAlreadyExists，其余错误原样返回
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", pkgerrors.ErrAlreadyExists, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
