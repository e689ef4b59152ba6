package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/store"
)

type sampleComplaint struct {
	input  domain.NewComplaint
	status domain.ComplaintStatus
}

var sampleComplaints = []sampleComplaint{
	{
		input: domain.NewComplaint{
			StudentName: "Rahul Kumar",
			Department:  "Computer Science Engineering (CSE)",
			IssueTitle:  "Lab Equipment Not Working",
			Description: "The computers in Lab 3 are outdated and frequently crash during practical sessions. This is affecting our ability to complete assignments on time.",
		},
		status: domain.StatusResolved,
	},
	{
		input: domain.NewComplaint{
			StudentName: "Priya Sharma",
			Department:  "Electronics & Communication Engineering (ECE)",
			IssueTitle:  "Canteen Food Quality Issues",
			Description: "The food quality in the main canteen has deteriorated significantly. Many students have complained about stale food and poor hygiene standards.",
		},
		status: domain.StatusPending,
	},
	{
		input: domain.NewComplaint{
			StudentName: "Amit Patel",
			Department:  "Mechanical Engineering",
			IssueTitle:  "Library Book Shortage",
			Description: "There are insufficient reference books in the library for our core subjects. Students have to wait weeks to access important study materials.",
		},
		status: domain.StatusResolved,
	},
	{
		input: domain.NewComplaint{
			StudentName: "Sneha Reddy",
			Department:  "Information Technology (IT)",
			IssueTitle:  "Wi-Fi Connectivity Problems",
			Description: "The Wi-Fi network in the academic block frequently disconnects, making it difficult to attend online classes and access learning resources.",
		},
		status: domain.StatusPending,
	},
	{
		input: domain.NewComplaint{
			StudentName: "Vikram Singh",
			Department:  "Civil Engineering",
			IssueTitle:  "Hostel Maintenance Required",
			Description: "The hostel rooms need urgent maintenance. Issues include leaking pipes, broken windows, and malfunctioning electrical fixtures.",
		},
		status: domain.StatusPending,
	},
	{
		input: domain.NewComplaint{
			StudentName: "Anjali Verma",
			Department:  "Electrical & Electronics Engineering (EEE)",
			IssueTitle:  "Classroom AC Not Working",
			Description: "Air conditioning units in multiple classrooms are not functioning, making it very uncomfortable during afternoon sessions especially in summer.",
		},
		status: domain.StatusResolved,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	st, err := store.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage backend", zap.Error(err))
	}
	defer st.Close()

	seeded := 0
	for _, sample := range sampleComplaints {
		created, err := st.CreateComplaint(ctx, sample.input)
		if err != nil {
			logger.Fatal("failed to seed complaint",
				zap.String("issue_title", sample.input.IssueTitle),
				zap.Error(err))
		}
		if sample.status == domain.StatusResolved {
			if _, err := st.UpdateComplaintStatus(ctx, created.ID, domain.StatusResolved); err != nil {
				logger.Fatal("failed to resolve seeded complaint",
					zap.String("id", created.ID),
					zap.Error(err))
			}
		}
		seeded++
		logger.Info("seeded complaint",
			zap.String("issue_title", created.IssueTitle),
			zap.String("status", string(sample.status)))
	}

	logger.Info("seeding completed", zap.Int("total", seeded))
}
