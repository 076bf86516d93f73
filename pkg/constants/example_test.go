package constants_test

import (
	"fmt"
	"path/filepath"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
)

// Example shows where bit keeps its settings.
func Example() {
	settings := filepath.Join("/home/op", constants.AppDirName, constants.SettingsFile)
	fmt.Println(settings)
	fmt.Printf("settings file mode %o\n", constants.SecureFilePermissions)
	// Output:
	// /home/op/.binance-icons-toolkit/bit.json
	// settings file mode 600
}

// Example_branches lists the branches a full clone checks out.
func Example_branches() {
	for _, branch := range []string{constants.MainBranch, constants.DevBranch} {
		fmt.Printf("%s depth=%d\n", branch, constants.CloneDepth)
	}
	// Output:
	// main depth=1
	// dev depth=1
}

// Example_timeouts prints the request and shutdown bounds.
func Example_timeouts() {
	fmt.Println("http:", constants.DefaultHTTPTimeout)
	fmt.Println("shutdown:", constants.ShutdownTimeout)
	fmt.Println("exchange cache:", constants.ExchangeCacheTTL)
	// Output:
	// http: 30s
	// shutdown: 5s
	// exchange cache: 5m0s
}
