package wandb

import (
	"fmt"
	"strings"

	"github.com/Backland-Labs/wbpeek/internal/params"
	"github.com/Backland-Labs/wbpeek/internal/runs"
)

const runFragment = `
	fragment RunFragment on Run {
		id
		name
		displayName
		group
		state
		createdAt
		config
		summaryMetrics
	}
`

const runsQuery = `
	query Runs($entity: String!, $project: String!, $cursor: String, $perPage: Int, $order: String, $filters: JSONString) {
		project(name: $project, entityName: $entity) {
			runs(filters: $filters, after: $cursor, first: $perPage, order: $order) {
				edges {
					node {
						...RunFragment
					}
				}
				pageInfo {
					endCursor
					hasNextPage
				}
			}
		}
	}
` + runFragment

const runQuery = `
	query Run($entity: String!, $project: String!, $name: String!) {
		project(name: $project, entityName: $entity) {
			run(name: $name) {
				...RunFragment
			}
		}
	}
` + runFragment

const deleteRunMutation = `
	mutation DeleteRun($id: ID!) {
		deleteRun(input: {id: $id}) {
			clientMutationId
		}
	}
`

// runNode is a run as returned by the API. Config and summary metrics are
// JSON documents encoded as strings.
type runNode struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Group          string `json:"group"`
	State          string `json:"state"`
	CreatedAt      string `json:"createdAt"`
	Config         string `json:"config"`
	SummaryMetrics string `json:"summaryMetrics"`
}

type runsData struct {
	Project *struct {
		Runs struct {
			Edges []struct {
				Node runNode `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"runs"`
	} `json:"project"`
}

type runData struct {
	Project *struct {
		Run *runNode `json:"run"`
	} `json:"project"`
}

type deleteData struct {
	DeleteRun *struct {
		ClientMutationID *string `json:"clientMutationId"`
	} `json:"deleteRun"`
}

// toRun converts an API node into a run. The API's name is the short run id;
// its id is the storage id.
func (c *apiClient) toRun(node runNode, entity, project string) (runs.Run, error) {
	cfg, err := decodeConfig(node.Config)
	if err != nil {
		return runs.Run{}, fmt.Errorf("run %s: config: %w", node.Name, err)
	}
	summary, err := params.ParseDocument([]byte(node.SummaryMetrics))
	if err != nil {
		return runs.Run{}, fmt.Errorf("run %s: summary: %w", node.Name, err)
	}

	return runs.Run{
		ID:        node.Name,
		Name:      node.DisplayName,
		Group:     node.Group,
		State:     runs.ParseState(node.State),
		CreatedAt: node.CreatedAt,
		Config:    cfg,
		Summary:   summary,
		URL:       strings.Join([]string{c.appURL, entity, project, "runs", node.Name}, "/"),
		StorageID: node.ID,
	}, nil
}

// decodeConfig parses a run config. Internal keys (leading underscore) are
// dropped and {"value": v, "desc": ...} entries are replaced by v.
func decodeConfig(raw string) (params.Document, error) {
	doc, err := params.ParseDocument([]byte(raw))
	if err != nil {
		return nil, err
	}

	out := make(params.Document, len(doc))
	for key, value := range doc {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if wrapped, ok := value.(params.Document); ok {
			if inner, ok := wrapped["value"]; ok {
				value = inner
			}
		}
		out[key] = value
	}
	return out, nil
}
