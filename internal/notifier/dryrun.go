package notifier

import "fmt"

// DryRunNotifier prints reports to stdout instead of delivering them.
// Used when exercising the pipeline without Telegram credentials.
type DryRunNotifier struct{}

// NewDryRun creates a notifier that only prints.
func NewDryRun() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the header and each block to stdout.
func (n *DryRunNotifier) Notify(header string, blocks []string) error {
	fmt.Println("=== DRY RUN - report not sent ===")
	if header != "" {
		fmt.Println(header)
		fmt.Println()
	}
	for _, block := range blocks {
		fmt.Println(block)
		fmt.Println()
	}
	fmt.Println("=== END DRY RUN ===")
	return nil
}
