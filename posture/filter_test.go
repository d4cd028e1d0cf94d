package posture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secwatch/posture-backend/model"
)

func TestAppRiskLevel(t *testing.T) {
	latest := "2.0.0"
	assert.Equal(t, model.AppRiskHigh, AppRiskLevel(model.NormalizedApp{CveCount: 5}))
	assert.Equal(t, model.AppRiskHigh, AppRiskLevel(model.NormalizedApp{LatestVersion: &latest, Outdated: true}))
	assert.Equal(t, model.AppRiskMedium, AppRiskLevel(model.NormalizedApp{CveCount: 1}))
	assert.Equal(t, model.AppRiskLow, AppRiskLevel(model.NormalizedApp{}))
}

func TestFilterAppsFacets(t *testing.T) {
	apps := []model.NormalizedApp{
		{Name: "Chrome", Vendor: "Google", Status: model.AppStatusInstalled, CveCount: 7},
		{Name: "Firefox", Vendor: "Mozilla", Status: model.AppStatusInstalled, CveCount: 1, IsRunning: true},
		{Name: "VLC", Vendor: "VideoLAN", Status: model.AppStatusUninstalled},
		{Name: "Slack", Vendor: "Salesforce", Status: model.AppStatusInstalled, Description: "team chat client"},
	}

	t.Run("search spans name vendor description", func(t *testing.T) {
		got := FilterApps(apps, model.AppFacets{Search: "mozilla"})
		require.Len(t, got, 1)
		assert.Equal(t, "Firefox", got[0].Name)

		got = FilterApps(apps, model.AppFacets{Search: "chat"})
		require.Len(t, got, 1)
		assert.Equal(t, "Slack", got[0].Name)
	})

	t.Run("risk level", func(t *testing.T) {
		got := FilterApps(apps, model.AppFacets{RiskLevel: model.AppRiskHigh})
		require.Len(t, got, 1)
		assert.Equal(t, "Chrome", got[0].Name)
	})

	t.Run("running status matches the flag", func(t *testing.T) {
		got := FilterApps(apps, model.AppFacets{Status: "running"})
		require.Len(t, got, 1)
		assert.Equal(t, "Firefox", got[0].Name)
	})

	t.Run("facets combine as AND", func(t *testing.T) {
		got := FilterApps(apps, model.AppFacets{Search: "o", Status: "uninstalled"})
		require.Len(t, got, 1)
		assert.Equal(t, "VLC", got[0].Name)
	})

	t.Run("input untouched", func(t *testing.T) {
		FilterApps(apps, model.AppFacets{SortBy: model.AppSortName})
		assert.Equal(t, "Chrome", apps[0].Name)
	})
}

func TestSortApps(t *testing.T) {
	latest := "9.0"
	apps := []model.NormalizedApp{
		{Name: "B", Vendor: "Y", Version: "2.0", CveCount: 1},
		{Name: "A", Vendor: "Z", Version: "1.0", LatestVersion: &latest, Outdated: true, CveCount: 0},
		{Name: "C", Vendor: "X", Version: "3.0", CveCount: 6},
	}

	byRisk := FilterApps(apps, model.AppFacets{SortBy: model.AppSortRisk})
	assert.Equal(t, []string{"C", "A", "B"}, appNames(byRisk))

	byName := FilterApps(apps, model.AppFacets{SortBy: model.AppSortName})
	assert.Equal(t, []string{"A", "B", "C"}, appNames(byName))

	byVendor := FilterApps(apps, model.AppFacets{SortBy: model.AppSortVendor})
	assert.Equal(t, []string{"C", "B", "A"}, appNames(byVendor))

	// Default orders by CVE count.
	def := FilterApps(apps, model.AppFacets{})
	assert.Equal(t, []string{"C", "B", "A"}, appNames(def))
}

func appNames(apps []model.NormalizedApp) []string {
	names := make([]string, len(apps))
	for i, app := range apps {
		names[i] = app.Name
	}
	return names
}

func TestFilterCvesFacets(t *testing.T) {
	cves := []model.NormalizedCve{
		{CveID: "CVE-2024-0001", Severity: model.SeverityCritical, HasKnownExploit: true, AppName: "Chrome", MatchConfidence: 2, RemediationType: "patch available", CvssScore: 9.8},
		{CveID: "CVE-2024-0002", Severity: model.SeverityHigh, AppName: " chrome ", MatchConfidence: 1, RemediationType: "workaround", CvssScore: 8.1},
		{CveID: "CVE-2024-0003", Severity: model.SeverityLow, AppName: "VLC", CvssScore: 3.1},
	}

	t.Run("known exploit only", func(t *testing.T) {
		got := FilterCves(cves, model.CveFacets{KnownExploitOnly: true})
		require.Len(t, got, 1)
		assert.Equal(t, "CVE-2024-0001", got[0].CveID)
	})

	t.Run("severity", func(t *testing.T) {
		got := FilterCves(cves, model.CveFacets{Severity: model.SeverityHigh})
		require.Len(t, got, 1)
		assert.Equal(t, "CVE-2024-0002", got[0].CveID)
	})

	t.Run("app name matches after trim and case fold", func(t *testing.T) {
		got := FilterCves(cves, model.CveFacets{AppName: "CHROME"})
		assert.Len(t, got, 2)
	})

	t.Run("match bucket", func(t *testing.T) {
		got := FilterCves(cves, model.CveFacets{MatchBucket: MatchBucketHeuristic})
		require.Len(t, got, 1)
		assert.Equal(t, "CVE-2024-0002", got[0].CveID)
	})

	t.Run("remediation bucket", func(t *testing.T) {
		got := FilterCves(cves, model.CveFacets{Remediation: RemediationMitigate})
		require.Len(t, got, 1)
		assert.Equal(t, "CVE-2024-0002", got[0].CveID)
	})
}

func TestSortCvesStable(t *testing.T) {
	// Equal CVSS scores must retain their input order.
	cves := []model.NormalizedCve{
		{CveID: "CVE-2024-0001", CvssScore: 7.5},
		{CveID: "CVE-2024-0002", CvssScore: 7.5},
		{CveID: "CVE-2024-0003", CvssScore: 9.0},
	}

	got := FilterCves(cves, model.CveFacets{SortBy: model.CveSortRisk})
	assert.Equal(t, []string{"CVE-2024-0003", "CVE-2024-0001", "CVE-2024-0002"}, cveIDs(got))
}

func TestSortCvesRecent(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cves := []model.NormalizedCve{
		{CveID: "CVE-2024-0001", LastDetected: &old},
		{CveID: "CVE-2024-0002"}, // undated sinks to the bottom
		{CveID: "CVE-2024-0003", LastDetected: &recent},
	}

	got := FilterCves(cves, model.CveFacets{SortBy: model.CveSortRecent})
	assert.Equal(t, []string{"CVE-2024-0003", "CVE-2024-0001", "CVE-2024-0002"}, cveIDs(got))
}

func TestSortCvesExploitability(t *testing.T) {
	cves := []model.NormalizedCve{
		{CveID: "CVE-2024-0001", CvssScore: 9.8},
		{CveID: "CVE-2024-0002", CvssScore: 5.0, HasKnownExploit: true},
		{CveID: "CVE-2024-0003", CvssScore: 7.0, HasKnownExploit: true},
	}

	got := FilterCves(cves, model.CveFacets{SortBy: model.CveSortExploitability})
	assert.Equal(t, []string{"CVE-2024-0003", "CVE-2024-0002", "CVE-2024-0001"}, cveIDs(got))
}

func cveIDs(cves []model.NormalizedCve) []string {
	ids := make([]string, len(cves))
	for i, cve := range cves {
		ids[i] = cve.CveID
	}
	return ids
}
