package recordsource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/golistview/internal/database"
	"github.com/dbsmedya/golistview/internal/lock"
	"github.com/dbsmedya/golistview/internal/sqlutil"
)

// execer runs statements on a pool or on one pinned connection.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// DeleteRecords deletes the given records by primary key, in batches of
// the configured size. Each batch is auto-committed. Ids that are already
// gone are not an error. On MySQL the deletes run under the table's
// advisory lock, on the connection holding it.
func (s *Source) DeleteRecords(ctx context.Context, objectType string, ids []string) error {
	if err := s.checkObject(objectType); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	if s.driver != database.DriverMySQL {
		_, err := s.Delete(ctx, ids)
		return err
	}

	deleteLock := lock.NewDeleteLock(s.db, s.view.TableName())
	return deleteLock.WithLock(ctx, lock.TimeoutMedium, func() error {
		s.logger.Debugw("Acquired delete lock", "lock", deleteLock.LockName())
		_, err := s.deleteBatches(ctx, deleteLock, ids)
		return err
	})
}

// Delete deletes the records and returns the number of rows removed.
func (s *Source) Delete(ctx context.Context, ids []string) (int64, error) {
	return s.deleteBatches(ctx, s.db, ids)
}

func (s *Source) deleteBatches(ctx context.Context, exec execer, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	table, err := sqlutil.QuoteIdentifierSafe(s.view.TableName())
	if err != nil {
		return 0, err
	}
	pk, err := sqlutil.QuoteIdentifierSafe(s.view.IDField())
	if err != nil {
		return 0, err
	}

	var totalDeleted int64
	totalBatches := (len(ids) + s.batchSize - 1) / s.batchSize

	for batchNum := 0; batchNum < totalBatches; batchNum++ {
		if err := ctx.Err(); err != nil {
			return totalDeleted, fmt.Errorf("delete interrupted: %w", err)
		}

		start := batchNum * s.batchSize
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		rowsDeleted, err := s.executeDelete(ctx, exec, table, pk, ids[start:end])
		if err != nil {
			return totalDeleted, fmt.Errorf("batch %d/%d failed: %w", batchNum+1, totalBatches, err)
		}
		totalDeleted += rowsDeleted

		if totalBatches > 1 {
			s.logger.Debugf("Deleted %d rows from %s (batch %d/%d)",
				rowsDeleted, s.view.TableName(), batchNum+1, totalBatches)
		}
	}

	s.logger.Infof("Deleted %d of %d %s records", totalDeleted, len(ids), s.view.ObjectType)
	return totalDeleted, nil
}

// executeDelete runs one DELETE ... IN statement. table and pk are quoted.
func (s *Source) executeDelete(ctx context.Context, exec execer, table, pk string, ids []string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", table, pk, sqlutil.Placeholders(len(ids)))

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Debugf("No rows deleted from %s for %d ids (may have been deleted already)", s.view.TableName(), len(ids))
	} else if rowsAffected < int64(len(ids)) {
		s.logger.Warnf("Partial delete from %s: %d/%d rows deleted", s.view.TableName(), rowsAffected, len(ids))
	}

	return rowsAffected, nil
}

// SetBatchSize sets the delete batch size.
func (s *Source) SetBatchSize(size int) {
	if size > 0 {
		s.batchSize = size
	}
}

// BatchSize returns the delete batch size.
func (s *Source) BatchSize() int {
	return s.batchSize
}
