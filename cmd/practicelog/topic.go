package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"practicelog/internal/api"
	"practicelog/internal/config"
)

func newTopicCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "List and create practice topics",
	}
	cmd.AddCommand(
		newTopicListCmd(cfg, jsonOutput),
		newTopicAddCmd(cfg, jsonOutput),
		newTopicGoalsCmd(cfg, jsonOutput),
	)
	return cmd
}

func newTopicListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List topics in number order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				topics, err := client.ListTopics(ctx)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(topics)
				}
				return writeTopicList(topics)
			})
		},
	}
}

func newTopicAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Create a topic with the next free number",
		Args:  atLeast(1, "title is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				topic, err := client.CreateTopic(ctx, title)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(topic)
				}
				return writePlain("created topic %d. %s (%s)\n", topic.TopicNumber, topic.Title, topic.ID)
			})
		},
	}
}

func newTopicGoalsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var add string

	cmd := &cobra.Command{
		Use:   "goals <topic-id>",
		Short: "List a topic's goals, or add one with --add",
		Args:  withJournalID(exactly(1, "topic id is required"), 0, "topic id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				if strings.TrimSpace(add) != "" {
					goal, err := client.CreateGoal(ctx, args[0], api.GoalCreateRequest{Description: add})
					if err != nil {
						return err
					}
					if *jsonOutput {
						return writeJSON(goal)
					}
					return writePlain("%s\n", formatGoalLine(goal))
				}

				goals, err := client.ListGoals(ctx, args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(goals)
				}
				for _, goal := range goals {
					if err := writePlain("%s\n", formatGoalLine(goal)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&add, "add", "", "create a goal with this description")
	return cmd
}
