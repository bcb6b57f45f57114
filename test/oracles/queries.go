package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Oracle is a query that must return no rows while the system is healthy.
type Oracle struct {
	Name string
	SQL  string
}

func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_unique_email",
			SQL:  `SELECT email, COUNT(*) FROM users GROUP BY email HAVING COUNT(*) > 1`,
		},
		{
			Name: "O2_one_review_per_user_and_place",
			SQL: `SELECT user_id, place_id, COUNT(*) FROM reviews
                  GROUP BY user_id, place_id HAVING COUNT(*) > 1`,
		},
		{
			Name: "O3_no_self_review",
			SQL: `SELECT r.id, r.user_id FROM reviews r
                  JOIN places p ON p.id = r.place_id
                  WHERE r.user_id = p.owner_id`,
		},
		{
			Name: "O4_value_ranges",
			SQL: `SELECT id, 'place' FROM places
                  WHERE price < 0 OR latitude NOT BETWEEN -90 AND 90 OR longitude NOT BETWEEN -180 AND 180
                     OR btrim(title) = ''
                  UNION ALL
                  SELECT id, 'review' FROM reviews
                  WHERE rating NOT BETWEEN 1 AND 5 OR btrim(text) = ''`,
		},
		{
			Name: "O5_orphan_links",
			SQL: `SELECT pa.place_id, pa.amenity_id FROM place_amenities pa
                  LEFT JOIN places p ON p.id = pa.place_id
                  LEFT JOIN amenities a ON a.id = pa.amenity_id
                  WHERE p.id IS NULL OR a.id IS NULL`,
		},
		{
			Name: "O6_dangling_owners_and_authors",
			SQL: `SELECT p.id FROM places p LEFT JOIN users u ON u.id = p.owner_id WHERE u.id IS NULL
                  UNION ALL
                  SELECT r.id FROM reviews r LEFT JOIN users u ON u.id = r.user_id WHERE u.id IS NULL`,
		},
		{
			Name: "O7_unique_amenity_name",
			SQL:  `SELECT name, COUNT(*) FROM amenities GROUP BY name HAVING COUNT(*) > 1`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row text) or empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
	}
	return "", "", nil
}
