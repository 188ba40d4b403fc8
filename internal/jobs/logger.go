package jobs

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// cronUniqueTTL keeps a slow run from being queued twice by the next tick.
const cronUniqueTTL = 30 * time.Minute

// logger routes asynq's own messages through zerolog.
type logger struct{}

func (logger) Debug(args ...any) { log.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...)) }

func (logger) Info(args ...any) { log.Info().Str("component", "asynq").Msg(fmt.Sprint(args...)) }

func (logger) Warn(args ...any) { log.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...)) }

func (logger) Error(args ...any) { log.Error().Str("component", "asynq").Msg(fmt.Sprint(args...)) }

func (logger) Fatal(args ...any) { log.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
