package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-hrgql/internal/client"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

func colorStatus(status string) string {
	switch strings.ToUpper(status) {
	case "ACTIVE":
		return color.GreenString(status)
	case "INACTIVE":
		return color.YellowString(status)
	case "TERMINATED":
		return color.RedString(status)
	default:
		return status
	}
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func renderEmployees(w io.Writer, items []client.Employee) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no employees found")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Code", "Name", "Department", "Position", "Status", "Hired", "Manager"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, e := range items {
		manager := "-"
		if e.Manager != nil {
			manager = e.Manager.Name
		}
		table.Append([]string{
			e.ID,
			e.EmployeeCode,
			e.Name,
			e.Department,
			e.Position,
			colorStatus(e.Status),
			e.HireDate.Format("2006-01-02"),
			manager,
		})
	}
	table.Render()
}

func renderPagination(w io.Writer, p client.Pagination) {
	fmt.Fprintf(w, "page %d of %d, %d employees", p.CurrentPage, p.TotalPages, p.TotalItems)
	if p.HasNextPage {
		fmt.Fprintf(w, " (next: --page %d)", p.CurrentPage+1)
	}
	fmt.Fprintln(w)
}

func renderEmployeeDetail(w io.Writer, e client.Employee) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	rows := [][]string{
		{"ID", e.ID},
		{"Code", e.EmployeeCode},
		{"Name", e.Name},
		{"Email", e.Email},
		{"Phone", orDash(e.Phone)},
		{"Department", e.Department},
		{"Position", e.Position},
		{"Status", colorStatus(e.Status)},
		{"Salary", money(e.Salary)},
		{"Hired", e.HireDate.Format("2006-01-02")},
		{"City", orDash(e.City)},
		{"Country", orDash(e.Country)},
	}
	if e.Age != nil {
		rows = append(rows, []string{"Age", strconv.Itoa(*e.Age)})
	}
	if e.Manager != nil {
		rows = append(rows, []string{"Manager", e.Manager.EmployeeCode + " " + e.Manager.Name})
	}
	if len(e.DirectReports) > 0 {
		names := make([]string, len(e.DirectReports))
		for i, r := range e.DirectReports {
			names[i] = r.Name
		}
		rows = append(rows, []string{"Reports", strings.Join(names, ", ")})
	}
	if len(e.Skills) > 0 {
		rows = append(rows, []string{"Skills", strings.Join(e.Skills, ", ")})
	}
	if e.PerformanceRating != nil {
		rows = append(rows, []string{"Rating", strconv.FormatFloat(*e.PerformanceRating, 'f', 1, 64)})
	}

	table.AppendBulk(rows)
	table.Render()
}

func renderStats(w io.Writer, s client.Stats) {
	fmt.Fprintf(w, "Total: %d  Active: %s  Inactive: %s  Terminated: %s\n",
		s.TotalEmployees,
		color.GreenString("%d", s.ActiveEmployees),
		color.YellowString("%d", s.InactiveEmployees),
		color.RedString("%d", s.TerminatedEmployees),
	)
	fmt.Fprintf(w, "New hires: %d this month, %d this year\n", s.NewHiresThisMonth, s.NewHiresThisYear)
	fmt.Fprintf(w, "Average salary: %s  Salary expense: %.2f\n", money(s.AverageSalary), s.TotalSalaryExpense)
	if s.AverageAge != nil {
		fmt.Fprintf(w, "Average age: %.1f\n", *s.AverageAge)
	}

	if len(s.DepartmentCounts) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Department", "Employees", "Avg Salary"})
	table.SetAutoFormatHeaders(false)
	for _, d := range s.DepartmentCounts {
		table.Append([]string{d.Department, strconv.Itoa(d.Count), money(d.AverageSalary)})
	}
	table.Render()
}

func renderBulkResult(w io.Writer, r client.BulkResult) {
	mark := color.GreenString("✓")
	if !r.Success {
		mark = color.RedString("✗")
	}
	fmt.Fprintf(w, "%s %s (%d affected)\n", mark, r.Message, r.AffectedCount)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}
