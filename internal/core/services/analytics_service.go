package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// AnalyticsService aggregates reporting data for the dashboards
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// OverviewData represents the superadmin dashboard overview
type OverviewData struct {
	TotalDSAs    int64 `json:"total_dsas"`
	TotalRMs     int64 `json:"total_rms"`
	TotalLoans   int64 `json:"total_loans"`
	PendingLoans int64 `json:"pending_loans"`

	ApprovedLoans int64 `json:"approved_loans"`
	RejectedLoans int64 `json:"rejected_loans"`

	TotalCommissionPaid float64 `json:"total_commission_paid"`
	PendingWithdrawals  int64   `json:"pending_withdrawals"`

	TopDSAs []AgentStats `json:"top_dsas"`
	TopRMs  []AgentStats `json:"top_rms"`
}

// AgentStats represents per-agent loan production
type AgentStats struct {
	AgentID    uint   `json:"agent_id"`
	Name       string `json:"name"`
	TotalLoans int64  `json:"total_loans"`
	Approved   int64  `json:"approved"`
	Rejected   int64  `json:"rejected"`
	Pending    int64  `json:"pending"`
}

// GetOverview returns the aggregated dashboard overview
func (s *AnalyticsService) GetOverview(ctx context.Context) (*OverviewData, error) {
	data := &OverviewData{}

	s.db.WithContext(ctx).Table("admins").Where("role = ? AND is_deleted = ?", "DSA", false).Count(&data.TotalDSAs)
	s.db.WithContext(ctx).Table("admins").Where("role = ? AND is_deleted = ?", "RM", false).Count(&data.TotalRMs)

	s.db.WithContext(ctx).Table("loans").Count(&data.TotalLoans)
	s.db.WithContext(ctx).Table("loans").Where("status = ?", "pending").Count(&data.PendingLoans)
	s.db.WithContext(ctx).Table("loans").Where("status = ?", "approved").Count(&data.ApprovedLoans)
	s.db.WithContext(ctx).Table("loans").Where("status = ?", "rejected").Count(&data.RejectedLoans)

	s.db.WithContext(ctx).Table("commissions").
		Where("status = ?", "credited").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalCommissionPaid)

	s.db.WithContext(ctx).Table("withdraw_requests").
		Where("status = ?", "pending").
		Count(&data.PendingWithdrawals)

	topDSAs, err := s.topAgents(ctx, "dsa_id")
	if err != nil {
		return nil, err
	}
	data.TopDSAs = topDSAs

	topRMs, err := s.topAgents(ctx, "rm_id")
	if err != nil {
		return nil, err
	}
	data.TopRMs = topRMs

	return data, nil
}

func (s *AnalyticsService) topAgents(ctx context.Context, column string) ([]AgentStats, error) {
	var rows []struct {
		AgentID    uint
		Name       string
		TotalLoans int64
		Approved   int64
		Rejected   int64
		Pending    int64
	}
	err := s.db.WithContext(ctx).Table("loans").
		Select(`
			loans.`+column+` as agent_id,
			admins.name,
			COUNT(*) as total_loans,
			SUM(CASE WHEN loans.status = 'approved' THEN 1 ELSE 0 END) as approved,
			SUM(CASE WHEN loans.status = 'rejected' THEN 1 ELSE 0 END) as rejected,
			SUM(CASE WHEN loans.status = 'pending' THEN 1 ELSE 0 END) as pending
		`).
		Joins("LEFT JOIN admins ON loans."+column+" = admins.id").
		Where("loans." + column + " IS NOT NULL").
		Group("loans." + column + ", admins.name").
		Order("total_loans DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]AgentStats, len(rows))
	for i, r := range rows {
		stats[i] = AgentStats{
			AgentID:    r.AgentID,
			Name:       r.Name,
			TotalLoans: r.TotalLoans,
			Approved:   r.Approved,
			Rejected:   r.Rejected,
			Pending:    r.Pending,
		}
	}
	return stats, nil
}

// Activity periods
const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

// ActivityPoint represents one bucket of loan submission activity. The
// label is the bucket's start date.
type ActivityPoint struct {
	Period     string `json:"period"`
	Loans      int64  `json:"loans"`
	ActiveDSAs int64  `json:"active_dsas"`
}

// GetDsaActivity returns a zero-filled activity series over the trailing
// 7 days or 7 weeks. With dsaID set it covers one DSA, otherwise the
// whole platform.
func (s *AnalyticsService) GetDsaActivity(ctx context.Context, dsaID *uint, period string) ([]ActivityPoint, error) {
	const buckets = 7

	step := 24 * time.Hour
	if period == PeriodWeekly {
		step = 7 * 24 * time.Hour
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	bucketStart := dayStart
	if period == PeriodWeekly {
		// align to Monday
		offset := (int(dayStart.Weekday()) + 6) % 7
		bucketStart = dayStart.AddDate(0, 0, -offset)
	}
	start := bucketStart.Add(-time.Duration(buckets-1) * step)

	var rows []struct {
		CreatedAt time.Time
		DsaID     uint
	}
	query := s.db.WithContext(ctx).Table("loans").
		Select("created_at, dsa_id").
		Where("dsa_id IS NOT NULL AND created_at >= ?", start)
	if dsaID != nil {
		query = query.Where("dsa_id = ?", *dsaID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	loans := make([]int64, buckets)
	active := make([]map[uint]struct{}, buckets)
	for i := range active {
		active[i] = make(map[uint]struct{})
	}
	for _, r := range rows {
		idx := int(r.CreatedAt.Sub(start) / step)
		if idx < 0 || idx >= buckets {
			continue
		}
		loans[idx]++
		active[idx][r.DsaID] = struct{}{}
	}

	points := make([]ActivityPoint, buckets)
	for i := range points {
		points[i] = ActivityPoint{
			Period:     start.Add(time.Duration(i) * step).Format("2006-01-02"),
			Loans:      loans[i],
			ActiveDSAs: int64(len(active[i])),
		}
	}
	return points, nil
}

// PlanPopularity represents how many admins hold a plan snapshot
type PlanPopularity struct {
	PlanName string `json:"plan_name"`
	Admins   int64  `json:"admins"`
}

// GetPlanPopularity returns admin counts per plan snapshot
func (s *AnalyticsService) GetPlanPopularity(ctx context.Context) ([]PlanPopularity, error) {
	var rows []struct {
		PlanName string
		Admins   int64
	}
	err := s.db.WithContext(ctx).Table("admins").
		Select("plan_name, COUNT(*) as admins").
		Where("plan_name <> '' AND is_deleted = ?", false).
		Group("plan_name").
		Order("admins DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PlanPopularity, len(rows))
	for i, r := range rows {
		out[i] = PlanPopularity{PlanName: r.PlanName, Admins: r.Admins}
	}
	return out, nil
}
