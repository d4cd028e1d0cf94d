package posture

import (
	"fmt"
	"strings"
	"time"

	"github.com/secwatch/posture-backend/model"
)

// maxActions caps the recommendation list. Truncation happens in rule
// evaluation order, not by severity. That mirrors the shipped behavior
// of the review page and is flagged for product confirmation; do not
// re-sort here without a product decision.
const maxActions = 3

// DeriveActions evaluates the flat, ordered action rule list against a
// profile. Each rule appends at most one action; when no rule fires the
// single success fallback is returned.
func DeriveActions(p *model.NormalizedProfile, now time.Time) []model.Action {
	var actions []model.Action
	summary := p.Cves.Summary

	if hb := p.TelemetryStatus.LastHeartbeat; hb != nil && now.Sub(*hb).Hours() > 24 {
		actions = append(actions, model.Action{
			Level: model.ActionWarning,
			Title: "Device is Offline",
			Desc:  fmt.Sprintf("No heartbeat received since %s. Verify the device is powered on and the agent is running.", hb.Format(time.RFC3339)),
		})
	}

	if summary.WithKnownExploit > 0 {
		actions = append(actions, model.Action{
			Level: model.ActionCritical,
			Title: "Active Exploits Detected",
			Desc:  fmt.Sprintf("%d vulnerabilities on this device have known exploits in the wild. Patch these first.", summary.WithKnownExploit),
		})
	}

	if ep := p.Device.EndpointProtection; ep != nil && !*ep {
		actions = append(actions, model.Action{
			Level: model.ActionCritical,
			Title: "Endpoint Protection Disabled",
			Desc:  "Endpoint protection is reported disabled. Re-enable it before triaging anything else.",
		})
	}

	if summary.Critical > 0 && summary.WithKnownExploit == 0 {
		actions = append(actions, model.Action{
			Level: model.ActionWarning,
			Title: "Critical Vulnerabilities",
			Desc:  fmt.Sprintf("%d critical vulnerabilities detected without known exploits. Schedule remediation.", summary.Critical),
		})
	}

	if os := p.Device.OS; strings.Contains(os, "Windows 7") || strings.Contains(os, "Windows 8") {
		actions = append(actions, model.Action{
			Level: model.ActionCritical,
			Title: "Unsupported OS",
			Desc:  fmt.Sprintf("%s no longer receives security updates. Plan an OS migration.", os),
		})
	}

	if len(actions) == 0 {
		return []model.Action{{
			Level: model.ActionSuccess,
			Title: "Device Secure",
			Desc:  "No outstanding posture issues were detected for this device.",
		}}
	}

	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}
