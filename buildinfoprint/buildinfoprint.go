// buildinfoprint is imported for the side effect of printing the build
// banner to os.Stderr.
package buildinfoprint

import "github.com/calcdelta/qpcr/buildinfo"

func init() {
	buildinfo.PrintToStderr()
}
