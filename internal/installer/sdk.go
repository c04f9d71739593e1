package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/progzone122/kff/internal/platform"
	"github.com/progzone122/kff/internal/progress"
)

// SDKDirName is the checkout directory created by InstallSDK.
const SDKDirName = "kindle-sdk"

// genSDKScript builds the SDK for one target inside the checkout.
const genSDKScript = "gen-sdk.sh"

// InstallSDK clones the SDK repository at url into dir/kindle-sdk, with
// submodules, and runs its build script for target. It returns the
// checkout path.
func (i *Installer) InstallSDK(ctx context.Context, target, url, dir string) (string, error) {
	if err := ValidateTarget(target); err != nil {
		return "", err
	}

	dest, err := filepath.Abs(filepath.Join(dir, SDKDirName))
	if err != nil {
		return "", fmt.Errorf("resolving SDK directory: %w", err)
	}

	fmt.Fprintf(i.out, "Cloning %s into %s\n", url, dest)
	rep := progress.New(i.out)
	err = i.cloner.Clone(ctx, url, dest, rep.Writer())
	rep.Close()
	if err != nil {
		return "", fmt.Errorf("cloning SDK: %w", err)
	}

	script := filepath.Join(dest, genSDKScript)
	if err := platform.MakeExecutable(script); err != nil {
		return "", fmt.Errorf("making %s executable: %w", genSDKScript, err)
	}

	fmt.Fprintf(i.out, "Running ./%s %s\n", genSDKScript, target)
	if err := i.run(ctx, dest, i.out, "./"+genSDKScript, target); err != nil {
		return "", fmt.Errorf("building SDK for %s: %w", target, err)
	}
	return dest, nil
}
