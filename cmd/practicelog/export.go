package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"practicelog/internal/config"
	"practicelog/internal/format"
	"practicelog/internal/journal"
	"practicelog/internal/models"
)

// journalExport is a full snapshot of one account's journal.
type journalExport struct {
	Username   string              `json:"username" yaml:"username"`
	ExportedAt time.Time           `json:"exported_at" yaml:"exported_at"`
	Topics     []topicExport       `json:"topics" yaml:"topics"`
	Repertoire []models.Repertoire `json:"repertoire" yaml:"repertoire"`
	Content    []models.Content    `json:"content" yaml:"content"`
	Tags       []string            `json:"tags" yaml:"tags"`
}

type topicExport struct {
	models.Topic `yaml:",inline"`
	Goals        []goalExport `json:"goals" yaml:"goals"`
}

type goalExport struct {
	models.Goal `yaml:",inline"`
	Logs        []models.Log `json:"logs" yaml:"logs"`
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var username string
	var outputPath string
	var formatName string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one account's journal as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := format.ByName(formatName)
			if err != nil {
				return err
			}

			st, svc, user, err := openUserJournal(cmd.Context(), cfg, username)
			if err != nil {
				return err
			}
			defer st.Close()

			snapshot, err := buildExport(cmd.Context(), svc)
			if err != nil {
				return err
			}
			snapshot.Username = user.Username
			snapshot.ExportedAt = time.Now().UTC()

			var w io.Writer = os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return formatter.Write(w, snapshot)
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account to export")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&formatName, "format", "yaml", "output format (yaml or json)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func buildExport(ctx context.Context, svc *journal.Service) (*journalExport, error) {
	out := &journalExport{}

	topics, err := svc.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	for _, topic := range topics {
		goals, err := svc.ListGoals(ctx, topic.ID)
		if err != nil {
			return nil, err
		}
		te := topicExport{Topic: topic, Goals: make([]goalExport, 0, len(goals))}
		for _, goal := range goals {
			logs, err := svc.ListLogs(ctx, goal.ID)
			if err != nil {
				return nil, err
			}
			te.Goals = append(te.Goals, goalExport{Goal: goal, Logs: logs})
		}
		out.Topics = append(out.Topics, te)
	}

	if out.Repertoire, err = svc.ListRepertoire(ctx); err != nil {
		return nil, err
	}
	if out.Content, err = svc.ListContent(ctx); err != nil {
		return nil, err
	}
	tags, err := svc.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		out.Tags = append(out.Tags, tag.Name)
	}
	return out, nil
}
