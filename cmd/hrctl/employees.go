package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-hrgql/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type listFlags struct {
	page       int
	limit      int
	sortBy     string
	order      string
	search     string
	department string
	position   string
	status     string
	manager    string
	city       string
	minSalary  float64
	maxSalary  float64
	hasManager string
}

func (f *listFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.page, "page", 1, "page number")
	fs.IntVar(&f.limit, "limit", 10, "items per page (max 100)")
	fs.StringVar(&f.sortBy, "sort-by", "firstName", "sort field")
	fs.StringVar(&f.order, "order", "asc", "asc or desc")
	fs.StringVar(&f.search, "search", "", "match name, email, code, department or position")
	fs.StringVar(&f.department, "department", "", "filter by department")
	fs.StringVar(&f.position, "position", "", "filter by position")
	fs.StringVar(&f.status, "status", "", "active, inactive or terminated")
	fs.StringVar(&f.manager, "manager", "", "filter by manager id")
	fs.StringVar(&f.city, "city", "", "filter by city")
	fs.Float64Var(&f.minSalary, "min-salary", 0, "minimum salary")
	fs.Float64Var(&f.maxSalary, "max-salary", 0, "maximum salary")
	fs.StringVar(&f.hasManager, "has-manager", "", "true or false")
}

func (f *listFlags) params(fs *pflag.FlagSet) (client.ListParams, error) {
	filters := map[string]any{}
	for key, val := range map[string]string{
		"search":     f.search,
		"department": f.department,
		"position":   f.position,
		"managerId":  f.manager,
		"city":       f.city,
	} {
		if val != "" {
			filters[key] = val
		}
	}
	if f.status != "" {
		filters["status"] = strings.ToUpper(f.status)
	}
	if fs.Changed("min-salary") {
		filters["minSalary"] = f.minSalary
	}
	if fs.Changed("max-salary") {
		filters["maxSalary"] = f.maxSalary
	}
	if f.hasManager != "" {
		b, err := strconv.ParseBool(f.hasManager)
		if err != nil {
			return client.ListParams{}, fmt.Errorf("--has-manager: %w", err)
		}
		filters["hasManager"] = b
	}

	return client.ListParams{
		Page:      f.page,
		Limit:     f.limit,
		SortBy:    f.sortBy,
		SortOrder: f.order,
		Filters:   filters,
	}, nil
}

func (c *cli) employeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "Browse and manage employee records",
	}
	cmd.AddCommand(
		c.employeesListCmd(),
		c.employeesGetCmd(),
		c.employeesSearchCmd(),
		c.employeesCreateCmd(),
		c.employeesUpdateCmd(),
		c.employeesDeleteCmd(),
		c.statusCmd("activate", client.Activate),
		c.statusCmd("deactivate", client.Deactivate),
		c.statusCmd("terminate", client.Terminate),
	)
	return cmd
}

func (c *cli) employeesListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.params(cmd.Flags())
			if err != nil {
				return err
			}
			page, err := c.api.ListEmployees(cmd.Context(), params)
			if err != nil {
				return err
			}
			renderEmployees(c.out, page.Items)
			renderPagination(c.out, page.Pagination)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func (c *cli) employeesGetCmd() *cobra.Command {
	var byCode bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				e   *client.Employee
				err error
			)
			if byCode {
				e, err = c.api.GetEmployeeByCode(cmd.Context(), args[0])
			} else {
				e, err = c.api.GetEmployee(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("employee %s not found", args[0])
			}
			renderEmployeeDetail(c.out, *e)
			return nil
		},
	}
	cmd.Flags().BoolVar(&byCode, "code", false, "treat the argument as an employee code")
	return cmd
}

func (c *cli) employeesSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Quick search across name, email, code, department and position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.api.SearchEmployees(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			renderEmployees(c.out, items)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results")
	return cmd
}

func (c *cli) employeesCreateCmd() *cobra.Command {
	var fields map[string]string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee from --set field=value pairs",
		Example: `  hrctl employees create --set employeeCode=EMP100 --set firstName=Budi --set lastName=Santoso \
    --set email=budi@company.com --set department=Engineering --set position="Software Engineer" \
    --set hireDate=2024-01-15 --set salary=72000 --set skills=go,sql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseFields(fields)
			if err != nil {
				return err
			}
			e, err := c.api.CreateEmployee(cmd.Context(), input)
			if err != nil {
				return err
			}
			renderEmployeeDetail(c.out, e)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&fields, "set", nil, "field=value (repeatable)")
	return cmd
}

func (c *cli) employeesUpdateCmd() *cobra.Command {
	var fields map[string]string
	cmd := &cobra.Command{
		Use:   "update <id> [id...]",
		Short: "Update one employee, or several at once with the same changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseFields(fields)
			if err != nil {
				return err
			}
			if len(input) == 0 {
				return errors.New("nothing to update: pass at least one --set")
			}
			if len(args) == 1 {
				e, err := c.api.UpdateEmployee(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				renderEmployeeDetail(c.out, e)
				return nil
			}
			res, err := c.api.BulkUpdateEmployees(cmd.Context(), args, input)
			if err != nil {
				return err
			}
			renderBulkResult(c.out, res)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&fields, "set", nil, "field=value (repeatable); an empty value clears the field")
	return cmd
}

func (c *cli) employeesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id> [id...]",
		Short: "Delete one or more employees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := c.api.DeleteEmployee(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "deleted %s\n", args[0])
				return nil
			}
			res, err := c.api.BulkDeleteEmployees(cmd.Context(), args)
			if err != nil {
				return err
			}
			renderBulkResult(c.out, res)
			return nil
		},
	}
}

func (c *cli) statusCmd(use string, action client.StatusAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: "Set the status of an employee (" + use + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.api.SetStatus(cmd.Context(), args[0], action)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s %s is now %s\n", e.EmployeeCode, e.Name, colorStatus(e.Status))
			return nil
		},
	}
}

func (c *cli) managersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "managers",
		Short: "List active employees eligible as managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.api.Managers(cmd.Context())
			if err != nil {
				return err
			}
			renderEmployees(c.out, items)
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show workforce statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.api.Stats(cmd.Context())
			if err != nil {
				return err
			}
			renderStats(c.out, s)
			return nil
		},
	}
}

func (c *cli) catalogCmd(use, short string, fetch func(*client.Client, context.Context) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := fetch(c.api, cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(c.out, v)
			}
			return nil
		},
	}
}

var (
	floatFields = map[string]bool{"salary": true, "performanceRating": true}
	intFields   = map[string]bool{"experience": true}
	listFields  = map[string]bool{"skills": true, "certifications": true}
	enumFields  = map[string]bool{"status": true, "gender": true}
)

// parseFields converts --set pairs into GraphQL input values. Numeric and
// list fields are typed; an empty value on a text field is sent as "" so
// the server clears it.
func parseFields(raw map[string]string) (map[string]any, error) {
	input := make(map[string]any, len(raw))
	for key, val := range raw {
		switch {
		case val == "" && (floatFields[key] || intFields[key] || enumFields[key]):
			return nil, fmt.Errorf("%s cannot be cleared", key)
		case val == "" && !listFields[key]:
			input[key] = ""
		case floatFields[key]:
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			input[key] = f
		case intFields[key]:
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			input[key] = n
		case listFields[key]:
			items := []string{}
			for _, s := range strings.Split(val, ",") {
				if s = strings.TrimSpace(s); s != "" {
					items = append(items, s)
				}
			}
			input[key] = items
		case enumFields[key]:
			input[key] = strings.ToUpper(val)
		default:
			input[key] = val
		}
	}
	return input, nil
}
