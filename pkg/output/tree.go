package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sonemaro/lintconf/pkg/logger"
	"github.com/sonemaro/lintconf/pkg/ruleset"
)

// treeNode is a line of tree output with its children.
type treeNode struct {
	label    string
	children []*treeNode
}

func (f *formatter) formatTree(v any) (string, error) {
	f.log.Debug("Formatting tree output")

	var root *treeNode
	switch val := v.(type) {
	case *ValidationReport:
		root = f.validationTree(val)
	case *ruleset.Plan:
		root = f.planTree(val)
	case *FilePlan:
		root = f.filePlanTree(val)
	case *ValueReport:
		return f.valueLine(val), nil
	}

	var builder strings.Builder
	f.formatTreeNode(&builder, root, "", true, true)

	if f.config.WithStats {
		f.log.Debug("Adding statistics to output")
		f.writeStats(&builder, f.calculateStats(v), v)
	}

	return builder.String(), nil
}

func (f *formatter) writeStats(builder *strings.Builder, s *stats, v any) {
	builder.WriteString("\nStatistics:\n")
	switch v.(type) {
	case *ValidationReport:
		builder.WriteString(fmt.Sprintf("  Notifications: %d\n", s.Notifications))
	case *ruleset.Plan:
		builder.WriteString(fmt.Sprintf("  Rule Sets: %d\n", s.RuleSets))
		builder.WriteString(fmt.Sprintf("  Rules: %d\n", s.Rules))
		builder.WriteString(fmt.Sprintf("  Active Rules: %d\n", s.ActiveRules))
	case *FilePlan:
		builder.WriteString(fmt.Sprintf("  Total Files: %d\n", s.Files))
		builder.WriteString(fmt.Sprintf("  Files With Rules: %d\n", s.CoveredFiles))
		builder.WriteString(fmt.Sprintf("  Total Size: %s\n", formatSize(s.TotalSize)))
	}
}

func (f *formatter) validationTree(report *ValidationReport) *treeNode {
	title := "Configuration is valid"
	if n := len(report.Notifications); n > 0 {
		title = fmt.Sprintf("Configuration has %d issue(s)", n)
		if report.WarningsAsErrors {
			title += " (warnings are errors)"
		}
		title = f.palette.warning.Sprint(title)
	} else {
		title = f.palette.active.Sprint(title)
	}

	root := &treeNode{label: title}
	for _, n := range report.Notifications {
		root.children = append(root.children, &treeNode{
			label: f.palette.path.Sprint(n.Path) + f.palette.faint.Sprintf(" [%s] ", n.Reason) + n.Message,
		})
	}
	return root
}

func (f *formatter) planTree(plan *ruleset.Plan) *treeNode {
	maxIssues := fmt.Sprintf("%d", plan.MaxIssues)
	if plan.MaxIssues == ruleset.Unlimited {
		maxIssues = "unlimited"
	}
	root := &treeNode{label: fmt.Sprintf("Rule plan (maxIssues: %s)", maxIssues)}

	for _, rs := range plan.RuleSets {
		set := &treeNode{label: f.palette.dir.Sprint(rs.Name) + " " + f.state(rs.Active)}
		for _, r := range rs.Rules {
			details := []string{r.Severity}
			if r.AutoCorrect {
				details = append(details, "autoCorrect")
			}
			if len(r.Includes) > 0 {
				details = append(details, "includes: "+strings.Join(r.Includes, ", "))
			}
			if len(r.Excludes) > 0 {
				details = append(details, "excludes: "+strings.Join(r.Excludes, ", "))
			}
			set.children = append(set.children, &treeNode{
				label: r.Name + " " + f.state(r.Active) + f.palette.faint.Sprintf(" (%s)", strings.Join(details, "; ")),
			})
		}
		root.children = append(root.children, set)
	}
	return root
}

func (f *formatter) state(active bool) string {
	if active {
		return f.palette.active.Sprint("active")
	}
	return f.palette.inactive.Sprint("inactive")
}

// filePlanTree folds the slash separated file paths into a directory tree.
func (f *formatter) filePlanTree(plan *FilePlan) *treeNode {
	root := &treeNode{label: f.palette.dir.Sprint(plan.Root) + "/"}
	dirs := map[string]*treeNode{"": root}

	files := append([]FileRules(nil), plan.Files...)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	for _, file := range files {
		parts := strings.Split(file.Path, "/")
		parent := root
		for i := range parts[:len(parts)-1] {
			key := strings.Join(parts[:i+1], "/")
			dir, ok := dirs[key]
			if !ok {
				dir = &treeNode{label: f.palette.dir.Sprint(parts[i]) + "/"}
				dirs[key] = dir
				parent.children = append(parent.children, dir)
			}
			parent = dir
		}

		label := parts[len(parts)-1]
		if len(file.Rules) == 0 {
			label += f.palette.faint.Sprint(" (no rules)")
		} else {
			label += " " + f.palette.active.Sprintf("[%s]", strings.Join(file.Rules, ", "))
		}
		parent.children = append(parent.children, &treeNode{label: label})
	}
	return root
}

func (f *formatter) valueLine(v *ValueReport) string {
	value := fmt.Sprint(v.Value)
	if list, ok := v.Value.([]string); ok {
		value = "[" + strings.Join(list, ", ") + "]"
	}
	if !v.Set {
		value = f.palette.faint.Sprint("<not set>")
	}
	return fmt.Sprintf("%s = %s (%s)\n", f.palette.path.Sprint(v.Path), value, v.Type)
}

func (f *formatter) formatTreeNode(builder *strings.Builder, node *treeNode, prefix string, isLast, isRoot bool) {
	if node == nil {
		return
	}

	f.log.WithFields(logger.Fields{
		"node":   node.label,
		"isLast": isLast,
		"isRoot": isRoot,
	}).Trace("Formatting tree node")

	if !isRoot {
		if isLast {
			builder.WriteString(prefix + "└── ")
		} else {
			builder.WriteString(prefix + "├── ")
		}
	}

	builder.WriteString(node.label)
	builder.WriteString("\n")

	newPrefix := prefix
	if !isRoot {
		if isLast {
			newPrefix += "    "
		} else {
			newPrefix += "│   "
		}
	}

	for i, child := range node.children {
		f.formatTreeNode(builder, child, newPrefix, i == len(node.children)-1, false)
	}
}
