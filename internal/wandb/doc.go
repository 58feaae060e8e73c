// Package wandb provides a client for the Weights & Biases GraphQL API.
// It lists a project's runs newest first, fetches single runs and deletes
// them, converting service records into runs.Run values.
//
// The client authenticates with an API key, which can be generated from the
// W&B user settings page: https://wandb.ai/authorize
//
// Transient failures (5xx responses, rate limiting, dropped connections) are
// retried with github.com/siderolabs/go-retry until the configured retry
// timeout elapses.
//
// Example usage:
//
//	client, err := wandb.NewClient(cfg.API)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for run, err := range client.Runs(ctx, wandb.RunQuery{Entity: "team", Project: "proj"}) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(run.ID, run.State)
//	}
package wandb
