package summary

import (
	"fmt"
	"strings"

	"github.com/IBM/vmware-l4-automation/internal/platform/cos"
	"github.com/IBM/vmware-l4-automation/internal/reconcile"
)

// RenderPlan renders the actions of plan and the resources already in
// place.
func RenderPlan(plan *reconcile.Plan) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Plan: " + plan.Desired.Catalog + " / " + plan.Desired.Workspace.Name))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Changes"))
	b.WriteString("\n")
	if plan.Empty() {
		b.WriteString(readyStyle.Render("  No changes. Remote state matches the lab."))
		b.WriteString("\n")
	}
	for _, a := range plan.Actions {
		fmt.Fprintf(&b, "  %s %s\n", pendingStyle.Render(planMark), describe(a))
	}

	if len(plan.Satisfied) > 0 {
		b.WriteString(sectionStyle.Render("In place"))
		b.WriteString("\n")
		for _, a := range plan.Satisfied {
			fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(skipMark), dimStyle.Render(a.ResourceType()+" "+a.Target()))
		}
	}

	return b.String()
}

// RenderResult renders per-action outcomes and the identifiers observed at
// the end of the run. Secure variable values are masked.
func RenderResult(res *reconcile.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Reconciliation result"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	for _, e := range res.Entries {
		switch e.Outcome {
		case reconcile.OutcomeSucceeded:
			fmt.Fprintf(&b, "  %s %s\n", readyStyle.Render(checkMark), describe(e.Action))
		case reconcile.OutcomeFailed:
			fmt.Fprintf(&b, "  %s %s\n", failedStyle.Render(crossMark), describe(e.Action))
			fmt.Fprintf(&b, "       %s\n", failedStyle.Render(e.Err.Error()))
		default:
			fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(skipMark), dimStyle.Render(e.Action.ResourceType()+" "+e.Action.Target()+" (in place)"))
		}
	}

	b.WriteString(sectionStyle.Render("Resources"))
	b.WriteString("\n")
	row(&b, "Catalog", res.CatalogID)
	row(&b, "Workspace", res.WorkspaceID)
	row(&b, "IP space", res.IPSpaceID)
	row(&b, "Public IP", res.PublicIP)

	if len(res.Variables) > 0 {
		b.WriteString(sectionStyle.Render("Workspace variables"))
		b.WriteString("\n")
		for _, v := range res.Variables {
			row(&b, v.Name, v.DisplayValue())
		}
	}

	succeeded := res.Count(reconcile.OutcomeSucceeded)
	failed := res.Count(reconcile.OutcomeFailed)
	skipped := res.Count(reconcile.OutcomeSkipped)
	b.WriteString("\n")
	line := fmt.Sprintf("%d succeeded, %d failed, %d in place", succeeded, failed, skipped)
	if failed > 0 {
		b.WriteString(failedStyle.Render(line))
	} else {
		b.WriteString(readyStyle.Render(line))
	}
	b.WriteString("\n")

	return b.String()
}

// RenderChecks renders catalog source verification results.
func RenderChecks(checks []cos.Check) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Image sources"))
	b.WriteString("\n")
	for _, c := range checks {
		if c.OK() {
			size := ""
			if c.Info != nil {
				size = dimStyle.Render(fmt.Sprintf("(%d bytes)", c.Info.Size))
			}
			fmt.Fprintf(&b, "  %s %s %s\n", readyStyle.Render(checkMark), c.Source.Name, size)
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", failedStyle.Render(crossMark), c.Source.Name)
		fmt.Fprintf(&b, "       %s\n", failedStyle.Render(c.Err.Error()))
	}
	return b.String()
}

func describe(a reconcile.Action) string {
	switch a.Kind {
	case reconcile.KindCreateCatalog:
		return "create catalog " + a.Catalog
	case reconcile.KindUploadCatalogItem:
		return "upload " + a.Item.Name + " from " + a.Item.Source
	case reconcile.KindCreateWorkspace:
		return fmt.Sprintf("create workspace %s (%s/%s, %d variables)",
			a.Workspace.Name, a.Workspace.Repository, a.Workspace.Folder, len(a.Workspace.Variables))
	case reconcile.KindAllocatePublicIP:
		return "allocate " + a.Address + " in IP space " + a.IPSpaceID
	default:
		return a.String()
	}
}

func row(b *strings.Builder, label, value string) {
	if value == "" {
		value = dimStyle.Render("-")
	}
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(label), value)
}
