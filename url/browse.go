package url

import "github.com/pkg/browser"

// LaunchInDefaultBrowser asks the operating system to open the URL in
// the user's default browser. Returns true if the launch seems to have
// worked.
func (u *URL) LaunchInDefaultBrowser() bool {
	return browser.OpenURL(u.ToString(true)) == nil
}
