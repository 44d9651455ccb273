package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/vendctl/entity"
	"github.com/s0up4200/vendctl/filter"
	"github.com/s0up4200/vendctl/vend"
)

// resource describes one entity collection exposed as a command group.
type resource struct {
	name     string
	singular string
	columns  []string
	list     func(*vend.Client, context.Context, *vend.ListParams) (*vend.Response, error)
	get      func(*vend.Client, context.Context, string) (*vend.Response, error)
}

var resources = []resource{
	{
		name:     entity.ResourceProducts,
		singular: "product",
		columns:  []string{"id", "handle", "name", "sku"},
		list:     (*vend.Client).Products,
		get:      (*vend.Client).Product,
	},
	{
		name:     entity.ResourceCustomers,
		singular: "customer",
		columns:  []string{"id", "customer_code", "first_name", "last_name", "email"},
		list:     (*vend.Client).Customers,
		get:      (*vend.Client).Customer,
	},
	{
		name:     entity.ResourceSales,
		singular: "sale",
		columns:  []string{"id", "invoice_number", "status", "total_price", "created_at"},
		list:     (*vend.Client).Sales,
		get:      (*vend.Client).Sale,
	},
}

type listOptions struct {
	filter   string
	preset   string
	pageSize int
	after    int64
	deleted  bool
	all      bool
}

func init() {
	for _, r := range resources {
		rootCmd.AddCommand(newResourceCmd(r))
	}
}

func newResourceCmd(r resource) *cobra.Command {
	parent := &cobra.Command{
		Use:     r.name,
		Aliases: []string{r.singular},
		Short:   fmt.Sprintf("List, fetch and edit %s", r.name),
	}

	opts := &listOptions{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s, optionally filtered", r.name),
		Long: fmt.Sprintf(`List %s. A filter is an expression over each item's fields:

  vendctl %s list --filter 'price > 10 && active'
  vendctl %s list --preset cheap --all`, r.name, r.name, r.name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, r, opts)
		},
	}
	listCmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "items per page")
	listCmd.Flags().Int64Var(&opts.after, "after", 0, "start after this version cursor")
	listCmd.Flags().BoolVar(&opts.deleted, "deleted", false, "include deleted items")
	listCmd.Flags().BoolVar(&opts.all, "all", false, "follow the cursor through every page")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Fetch one %s", r.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, r, args[0])
		},
	}

	var dryRun bool
	setCmd := &cobra.Command{
		Use:   "set <id> key=value...",
		Short: fmt.Sprintf("Change fields of a %s and save it", r.singular),
		Long: fmt.Sprintf(`Change fields of a %s. Values are read as JSON when they parse,
otherwise as plain strings. Only changed fields are sent.

  vendctl %s set 0af7b240 name="Large Mug" price_excluding_tax=14.5 active=false`, r.singular, r.singular),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, r, args[0], args[1:], dryRun)
		},
	}
	setCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the changes without saving")

	parent.AddCommand(listCmd, getCmd, setCmd)
	return parent
}

func runList(cmd *cobra.Command, r resource, opts *listOptions) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	compiled, err := resolveFilter(opts.filter, opts.preset)
	if err != nil {
		return err
	}

	params := &vend.ListParams{PageSize: opts.pageSize, After: opts.after, Deleted: opts.deleted}

	var items []*entity.Properties
	if opts.all {
		items, err = client.ListAll(ctx, r.name, params)
	} else {
		var resp *vend.Response
		resp, err = r.list(client, ctx, params)
		if err == nil {
			items, err = resp.Items(r.name)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", r.name, err)
	}

	if compiled != nil {
		total := len(items)
		items, err = filter.NewConcurrentEvaluator().Evaluate(ctx, compiled, items)
		if err != nil {
			return err
		}
		logger.Info().
			Str("filter", compiled.Expression()).
			Int("matched", len(items)).
			Int("total", total).
			Msg("Filtered " + r.name)
	}

	return renderItems(cmd.OutOrStdout(), outputFormat, items, r.columns)
}

func runGet(cmd *cobra.Command, r resource, id string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := r.get(client, cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", r.singular, id, err)
	}
	props, err := resp.Properties()
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, entity.ObjectValue(props), nil)
}

func runSet(cmd *cobra.Command, r resource, id string, assignments []string, dryRun bool) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := r.get(client, ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", r.singular, id, err)
	}
	props, err := resp.Properties()
	if err != nil {
		return err
	}

	obj := entity.NewObject(r.name, props, client.EntityStore())
	for _, a := range assignments {
		key, value, err := parseAssignment(a)
		if err != nil {
			return err
		}
		obj.Set(key, value)
	}

	changed := obj.Changed()
	if dryRun || !obj.HasChanges() {
		if !obj.HasChanges() {
			logger.Info().Str("id", id).Msg("Nothing changed")
		}
		return render(cmd.OutOrStdout(), outputFormat, entity.ObjectValue(changed), nil)
	}

	if err := obj.Save(ctx); err != nil {
		return err
	}

	logger.Info().
		Str(r.singular, id).
		Strs("fields", changed.Keys()).
		Msg("Saved " + r.singular)

	return render(cmd.OutOrStdout(), outputFormat, entity.ObjectValue(obj.Properties()), nil)
}

// parseAssignment splits key=value. The value is JSON when it parses,
// otherwise a plain string.
func parseAssignment(s string) (string, entity.Value, error) {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", entity.Value{}, fmt.Errorf("invalid assignment %q: expected key=value", s)
	}
	if v, err := entity.Parse([]byte(raw)); err == nil {
		return key, v, nil
	}
	return key, entity.StringValue(raw), nil
}

// resolveFilter picks the filter to apply.
// Priority: command line filter > preset > none
func resolveFilter(expression, preset string) (filter.CompiledFilter, error) {
	manager := filter.NewManager()

	if expression != "" {
		compiled, err := manager.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return compiled, nil
	}

	if preset == "" {
		return nil, nil
	}

	if err := manager.RegisterFilters(cfg.Filters); err != nil {
		return nil, fmt.Errorf("invalid filter preset: %w", err)
	}
	// Config keys are case-insensitive
	compiled, ok := manager.GetFilter(strings.ToLower(preset))
	if !ok {
		return nil, fmt.Errorf("preset '%s' not found in config (have: %s)", preset, strings.Join(manager.ListFilters(), ", "))
	}
	return compiled, nil
}
