package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"medication-reminder/internal/domain/medications"
	"medication-reminder/internal/domain/reminders"
	"medication-reminder/internal/platform/httpclient"
	"medication-reminder/internal/platform/logger"

	"github.com/spf13/cobra"
)

type remindOptions struct {
	server  string
	elderID string
	name    string
	token   string
	refresh time.Duration
}

func newRemindCmd() *cobra.Command {
	var o remindOptions

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Fetch an elder's medications and print a notification at each dose time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, err := loadConfig()
			if err != nil {
				return err
			}
			return remind(cmd.Context(), o, log)
		},
	}
	cmd.Flags().StringVar(&o.server, "server", "http://localhost:3000", "API base URL")
	cmd.Flags().StringVar(&o.elderID, "elder", "", "elder id")
	cmd.Flags().StringVar(&o.name, "name", "", "elder name used in the greeting")
	cmd.Flags().StringVar(&o.token, "token", "", "session token (optional)")
	cmd.Flags().DurationVar(&o.refresh, "refresh", 0, "re-fetch and re-arm every interval (0 = only at midnight)")
	_ = cmd.MarkFlagRequired("elder")
	return cmd
}

type medicationDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Time   string `json:"time"`
}

func remind(parent context.Context, o remindOptions, log logger.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := httpclient.New(strings.TrimRight(o.server, "/")+"/api", 0)
	if err != nil {
		return err
	}
	client.Token = o.token

	name := strings.TrimSpace(o.name)
	if name == "" {
		name = "there"
	}

	notifier := reminders.NotifierFunc(func(_ context.Context, n reminders.Notification) error {
		log.Info(n.Title, map[string]any{"body": n.Body})
		fmt.Printf("\a%s %s\n", n.Title, n.Body)
		return nil
	})
	sched := reminders.NewScheduler(notifier, time.Local, log)
	defer sched.Stop()

	arm := func() error {
		meds, err := fetchMedications(ctx, client, o.elderID)
		if err != nil {
			return err
		}
		plan := sched.Arm(name, meds)
		for _, r := range plan {
			log.Info("reminder armed", map[string]any{"medication": r.Name, "at": r.At.Format("15:04")})
		}
		return nil
	}
	if err := arm(); err != nil {
		return err
	}

	for {
		wait := untilMidnight(time.Now())
		if o.refresh > 0 && o.refresh < wait {
			wait = o.refresh
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
			if err := arm(); err != nil {
				log.Warn("re-arm failed", map[string]any{"err": err})
			}
		}
	}
}

func fetchMedications(ctx context.Context, c *httpclient.Client, elderID string) ([]medications.Medication, error) {
	var dtos []medicationDTO
	if err := c.Get(ctx, "/elders/"+elderID+"/medications", &dtos); err != nil {
		return nil, fmt.Errorf("fetch medications: %w", err)
	}

	out := make([]medications.Medication, 0, len(dtos))
	for _, d := range dtos {
		tod, err := medications.ParseTimeOfDay(d.Time)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("medication %s", d.ID), err)
		}
		out = append(out, medications.Medication{ID: d.ID, Name: d.Name, Dosage: d.Dosage, Time: tod})
	}
	return out, nil
}

// untilMidnight deja un segundo de margen para caer ya en el día siguiente.
func untilMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 1, 0, now.Location())
	return next.Sub(now)
}
