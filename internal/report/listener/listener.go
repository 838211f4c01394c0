package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/report"
	"github.com/fekuna/omnipos-restaurant-service/internal/report/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of broker.KafkaConsumer the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// ReportListener generates reports on request from the reports topic.
type ReportListener struct {
	consumer MessageReader
	uc       report.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewReportListener(consumer MessageReader, uc report.UseCase, logger logger.ZapLogger) *ReportListener {
	return &ReportListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *ReportListener) Start(ctx context.Context) {
	l.logger.Info("Starting report Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping report Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ReportListener) processMessage(ctx context.Context, value []byte) {
	var req dto.GenerateRequest
	if err := json.Unmarshal(value, &req); err != nil {
		l.logger.Error("Failed to unmarshal report request", zap.Error(err))
		return
	}

	date, err := dto.ParseDate(req.ReportDate)
	if err != nil {
		l.logger.Warn("Ignoring report request with bad date", zap.String("report_date", req.ReportDate))
		return
	}

	switch req.ReportType {
	case dto.ReportTypeSales:
		_, err = l.uc.GenerateSalesReport(ctx, date)
	case dto.ReportTypePerformance:
		_, err = l.uc.GeneratePerformanceReport(ctx, req.UserID, date)
	default:
		l.logger.Warn("Ignoring unknown report type", zap.String("report_type", req.ReportType))
		return
	}

	switch {
	case err == nil:
	case apperror.Is(err, apperror.KindConflict):
		l.logger.Info("Report already generated",
			zap.String("report_type", req.ReportType),
			zap.String("report_date", req.ReportDate),
			zap.Int64("user_id", req.UserID),
		)
	default:
		l.logger.Error("Failed to generate report",
			zap.String("report_type", req.ReportType),
			zap.String("report_date", req.ReportDate),
			zap.Int64("user_id", req.UserID),
			zap.Error(err),
		)
	}
}
