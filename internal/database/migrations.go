package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes. Postgres only: the
// existence check reads pg_indexes.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Profile lookups drive context resolution on every request
		{"profiles", "idx_profiles_user_id", "user_id"},
		{"profiles", "idx_profiles_org_id", "org_id"},
		{"profiles", "idx_profiles_org_role", "org_id, role"},

		// Org lookup by API key
		{"orgs", "idx_orgs_api_key", "api_key"},

		// Lead filtering and sorting
		{"leads", "idx_leads_org_id", "org_id"},
		{"leads", "idx_leads_status", "status"},
		{"leads", "idx_leads_created_by_id", "created_by_id"},

		// Sub-resources
		{"comments", "idx_comments_lead_id", "lead_id"},
		{"attachments", "idx_attachments_lead_id", "lead_id"},

		// Org-scoped listings
		{"teams", "idx_teams_org_id", "org_id"},
		{"documents", "idx_documents_org_id", "org_id"},
		{"companies", "idx_companies_org_id", "org_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
