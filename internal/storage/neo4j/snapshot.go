package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

// Ensure SnapshotRepository implements job.SnapshotWriter
var _ job.SnapshotWriter = (*SnapshotRepository)(nil)

// writer is the part of pkg/neo4j.Client used here.
type writer interface {
	ExecuteWrite(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error)
}

// SnapshotRepository writes jobs as a graph:
// (:Job)-[:POSTED_BY]->(:Poster)-[:LISTED_ON]->(:Provider)
type SnapshotRepository struct {
	client writer
	now    func() time.Time
}

// NewSnapshotRepository creates a SnapshotRepository with a Neo4j client
func NewSnapshotRepository(client writer) *SnapshotRepository {
	return &SnapshotRepository{
		client: client,
		now:    time.Now,
	}
}

const snapshotQuery = `
	UNWIND $jobs AS job
	MERGE (pr:Provider {key: job.provider.key})
	SET pr.name = job.provider.name,
	    pr.description = job.provider.description,
	    pr.uri = job.provider.uri
	MERGE (po:Poster {key: job.poster.key})
	SET po.name = job.poster.name,
	    po.location = job.poster.location,
	    po.businessType = job.poster.businessType,
	    po.website = job.poster.website
	MERGE (po)-[:LISTED_ON]->(pr)
	MERGE (j:Job {id: job.id})
	SET j.title = job.title,
	    j.location = job.location,
	    j.url = job.url,
	    j.vacancyType = job.vacancyType,
	    j.salary = job.salary,
	    j.publishedAt = date(job.publishedAt),
	    j.deadline = date(job.deadline),
	    j.snapshotAt = datetime({epochMillis: $snapshotAt})
	MERGE (j)-[:POSTED_BY]->(po)
`

// WriteSnapshot merges jobs, their posters and providers. Existing nodes are
// updated in place; nothing is deleted.
func (r *SnapshotRepository) WriteSnapshot(ctx context.Context, jobs []domain.Job) (job.SnapshotStats, error) {
	rows, stats := snapshotRows(jobs)
	if len(rows) == 0 {
		return stats, nil
	}

	params := map[string]any{
		"jobs":       rows,
		"snapshotAt": r.now().UnixMilli(),
	}

	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, snapshotQuery, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return job.SnapshotStats{}, fmt.Errorf("neo4j: write snapshot: %w", err)
	}

	return stats, nil
}

// snapshotRows converts jobs into query parameters and counts distinct nodes.
func snapshotRows(jobs []domain.Job) ([]map[string]any, job.SnapshotStats) {
	rows := make([]map[string]any, 0, len(jobs))
	providers := make(map[string]struct{})
	posters := make(map[string]struct{})
	ids := make(map[string]struct{})

	for _, j := range jobs {
		s := j.Summary(false)

		prov := providerRow(j.Provider())
		providerKey := prov["key"].(string)

		poster := map[string]any{}
		if p := j.Poster(); p != nil {
			ps := p.Summary()
			poster = map[string]any{
				"key":          providerKey + "|" + ps.Name + "|" + ps.Location,
				"name":         ps.Name,
				"location":     ps.Location,
				"businessType": string(ps.BusinessType),
				"website":      ps.Website,
			}
		} else {
			poster["key"] = providerKey + "|"
		}

		providers[providerKey] = struct{}{}
		posters[poster["key"].(string)] = struct{}{}
		ids[s.ID.String()] = struct{}{}

		rows = append(rows, map[string]any{
			"id":          s.ID.String(),
			"title":       s.Title,
			"location":    s.Location,
			"url":         s.URL,
			"vacancyType": string(s.VacancyType),
			"salary":      s.Salary,
			"publishedAt": nullable(s.PublishedAt),
			"deadline":    nullable(s.Deadline),
			"provider":    prov,
			"poster":      poster,
		})
	}

	return rows, job.SnapshotStats{
		Providers: len(providers),
		Posters:   len(posters),
		Jobs:      len(ids),
	}
}

func providerRow(o domain.Origin) map[string]any {
	if o == nil {
		return map[string]any{"key": "", "name": "", "description": "", "uri": ""}
	}
	uri := ""
	if u := o.URI(); u != nil {
		uri = u.String()
	}
	return map[string]any{
		"key":         o.Name() + "|" + o.Description() + "|" + uri,
		"name":        o.Name(),
		"description": o.Description(),
		"uri":         uri,
	}
}

// nullable maps "" to a Cypher null so date() yields null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
