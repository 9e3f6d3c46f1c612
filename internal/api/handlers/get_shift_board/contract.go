package get_shift_board

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/shiftboard"
)

type ShiftBoardService interface {
	BuildBoard(ctx context.Context, salonID int64, now time.Time) (*shiftboard.Board, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
