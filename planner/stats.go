/*
stats.go - Dashboard descriptive statistics

Thin aggregation layer over the employee/site records: point-in-time weekly
hour and contract counts, an estimated monthly cost, and variation against
the prior month. Uses the simple date-range activity check, not the
recurrence walk - the dashboard shows contractual capacity, not realized
attendance.
*/
package planner

import (
	"sort"

	"github.com/shopspring/decimal"
)

// weeksPerMonth is the conventional factor for projecting weekly hours onto a
// month.
var weeksPerMonth = decimal.NewFromFloat(4.33)

// SnapshotMetrics are the point-in-time capacity numbers.
type SnapshotMetrics struct {
	WeeklyHours     float64
	ActiveContracts int
	MonthlyCost     decimal.Decimal
}

// DashboardStats is the computed dashboard payload: current metrics,
// percentage variation against one month earlier, and site breakdowns.
type DashboardStats struct {
	Current   SnapshotMetrics
	Previous  SnapshotMetrics
	Variation struct {
		Hours     float64
		Contracts float64
		Cost      float64
	}
	SitesByCity map[string]int
	SiteLoad    []SiteLoad
}

// SiteLoad is the weekly assigned hours of one site, for the load ranking.
type SiteLoad struct {
	SiteID      string
	Name        string
	WeeklyHours float64
}

// MetricsAt computes capacity metrics as of a date: every non-archived
// assignment whose date range covers the date counts its full weekly
// schedule, priced at the employee rate plus any forfait amount.
func MetricsAt(employees []Employee, at Date) SnapshotMetrics {
	var m SnapshotMetrics
	for _, emp := range employees {
		for _, a := range emp.Assignments {
			if a.Archived || !a.DateRangeActive(at) {
				continue
			}
			weekly := a.Schedule.Total()
			m.WeeklyHours += weekly
			m.ActiveContracts++

			cost := decimal.NewFromFloat(weekly).Mul(weeksPerMonth).Mul(emp.HourlyRate)
			if a.EffectiveType() == AssignmentForfait {
				cost = cost.Add(a.ForfaitAmount)
			}
			m.MonthlyCost = m.MonthlyCost.Add(cost)
		}
	}
	return m
}

// ComputeDashboard builds the full dashboard payload as of a date.
func ComputeDashboard(employees []Employee, sites []Site, at Date) DashboardStats {
	stats := DashboardStats{
		Current:     MetricsAt(employees, at),
		Previous:    MetricsAt(employees, at.AddMonths(-1)),
		SitesByCity: map[string]int{},
	}

	stats.Variation.Hours = variation(stats.Current.WeeklyHours, stats.Previous.WeeklyHours)
	stats.Variation.Contracts = variation(float64(stats.Current.ActiveContracts), float64(stats.Previous.ActiveContracts))
	curCost, _ := stats.Current.MonthlyCost.Float64()
	prevCost, _ := stats.Previous.MonthlyCost.Float64()
	stats.Variation.Cost = variation(curCost, prevCost)

	siteHours := map[string]float64{}
	siteNames := map[string]string{}
	for _, s := range sites {
		city := s.City
		if city == "" {
			city = "Non specificato"
		}
		stats.SitesByCity[city]++
		siteHours[s.ID] = 0
		siteNames[s.ID] = s.Name
	}

	for _, emp := range employees {
		for _, a := range emp.Assignments {
			if a.Archived {
				continue
			}
			// Dangling site references are simply not counted.
			if _, known := siteHours[a.SiteID]; known {
				siteHours[a.SiteID] += a.Schedule.Total()
			}
		}
	}

	for id, hours := range siteHours {
		stats.SiteLoad = append(stats.SiteLoad, SiteLoad{SiteID: id, Name: siteNames[id], WeeklyHours: hours})
	}
	sort.Slice(stats.SiteLoad, func(i, j int) bool {
		if stats.SiteLoad[i].WeeklyHours != stats.SiteLoad[j].WeeklyHours {
			return stats.SiteLoad[i].WeeklyHours > stats.SiteLoad[j].WeeklyHours
		}
		return stats.SiteLoad[i].Name < stats.SiteLoad[j].Name
	})

	return stats
}

func variation(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
