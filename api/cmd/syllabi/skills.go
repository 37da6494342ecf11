package syllabi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/tools"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func newSkillsCmd() *cobra.Command {
	skillsCmd := &cobra.Command{
		Use:     "skills",
		Short:   "Inspect, validate and run skills",
		Aliases: []string{"skill"},
	}

	skillsCmd.AddCommand(newSkillsListCmd())
	skillsCmd.AddCommand(newSkillsExecCmd())
	skillsCmd.AddCommand(newSkillsValidateCmd())

	return skillsCmd
}

// withServices runs fn against freshly built services and closes them after
func withServices(fn func(svc *services) error) error {
	cfg, err := newServeConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

func newSkillsListCmd() *cobra.Command {
	var chatbotID string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the skills available to a chatbot",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(func(svc *services) error {
				return listSkills(cmd.Context(), cmd.OutOrStdout(), svc.store, chatbotID)
			})
		},
	}

	cmd.Flags().StringVar(&chatbotID, "chatbot", "", "Chatbot ID, lists every skill when empty")

	return cmd
}

func listSkills(ctx context.Context, out io.Writer, st store.Store, chatbotID string) error {
	table := tablewriter.NewWriter(out)
	table.Header("ID", "Name", "Type", "Category", "Active", "Executions", "Last executed")

	if chatbotID == "" {
		skills, err := st.ListSkills(ctx, &store.ListSkillsQuery{})
		if err != nil {
			return fmt.Errorf("failed to list skills: %w", err)
		}
		for _, skill := range skills {
			if err := table.Append(skillRow(skill, skill.IsActive)); err != nil {
				return err
			}
		}
		return table.Render()
	}

	skills, err := st.GetActiveSkillsForChatbot(ctx, chatbotID)
	if err != nil {
		return fmt.Errorf("failed to list skills for chatbot %s: %w", chatbotID, err)
	}
	for _, skill := range skills {
		if err := table.Append(skillRow(&skill.Skill, skill.Executable())); err != nil {
			return err
		}
	}
	return table.Render()
}

func skillRow(skill *types.Skill, active bool) []string {
	lastExecuted := "-"
	if skill.LastExecutedAt != nil {
		lastExecuted = skill.LastExecutedAt.Format(time.RFC3339)
	}
	return []string{
		skill.ID,
		skill.Name,
		string(skill.Type),
		skill.Category,
		strconv.FormatBool(active),
		strconv.Itoa(skill.ExecutionCount),
		lastExecuted,
	}
}

func newSkillsExecCmd() *cobra.Command {
	var (
		chatbotID string
		sessionID string
		params    string
		record    bool
	)

	cmd := &cobra.Command{
		Use:   "exec <skill-id>",
		Short: "Execute a chatbot skill with JSON parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parameters, err := parseParams(params)
			if err != nil {
				return err
			}
			return withServices(func(svc *services) error {
				return execSkill(cmd.Context(), cmd.OutOrStdout(), svc.store, svc.executor, chatbotID, args[0], parameters, types.SkillExecutionContext{
					ChatSessionID: sessionID,
					Channel:       types.ChannelAPI,
					TestMode:      !record,
				})
			})
		},
	}

	cmd.Flags().StringVar(&chatbotID, "chatbot", "", "Chatbot the skill is configured for")
	cmd.Flags().StringVar(&params, "params", "{}", "Parameters as a JSON object")
	cmd.Flags().StringVar(&sessionID, "session", "", "Chat session ID, required by integration skills")
	cmd.Flags().BoolVar(&record, "record", false, "Write an execution audit record")
	_ = cmd.MarkFlagRequired("chatbot")

	return cmd
}

func execSkill(ctx context.Context, out io.Writer, st store.Store, executor tools.SkillExecutor, chatbotID, skillID string, params map[string]any, sctx types.SkillExecutionContext) error {
	skill, err := st.GetChatbotSkill(ctx, chatbotID, skillID)
	if err != nil {
		return fmt.Errorf("failed to get skill %s for chatbot %s: %w", skillID, chatbotID, err)
	}

	sctx.SkillID = skill.Skill.ID
	sctx.ChatbotID = chatbotID

	result := executor.ExecuteSkill(ctx, skill, params, sctx)
	if err := writeJSON(out, result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("skill %s failed", skill.Skill.Name)
	}
	return nil
}

func newSkillsValidateCmd() *cobra.Command {
	var params string

	cmd := &cobra.Command{
		Use:   "validate <skill-id>",
		Short: "Check JSON parameters against a skill's schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parameters, err := parseParams(params)
			if err != nil {
				return err
			}
			return withServices(func(svc *services) error {
				return validateSkill(cmd.Context(), cmd.OutOrStdout(), svc.store, args[0], parameters)
			})
		},
	}

	cmd.Flags().StringVar(&params, "params", "{}", "Parameters as a JSON object")

	return cmd
}

func validateSkill(ctx context.Context, out io.Writer, st store.Store, skillID string, params map[string]any) error {
	skill, err := st.GetSkill(ctx, skillID)
	if err != nil {
		return fmt.Errorf("failed to get skill %s: %w", skillID, err)
	}

	result := schema.ValidateParameters(skill, params)
	if result.Valid {
		fmt.Fprintf(out, "parameters are valid for %s\n", skill.Name)
		return nil
	}

	fmt.Fprintf(out, "parameters are not valid for %s:\n", skill.Name)
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  - %s\n", e)
	}
	return fmt.Errorf("%d validation errors", len(result.Errors))
}

func parseParams(raw string) (map[string]any, error) {
	params := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return params, nil
	}
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("--params must be a JSON object: %w", err)
	}
	return params, nil
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
