//go:build windows

package toast

import (
	"fmt"
	"os/exec"
	"strings"
)

// showScript returns the PowerShell script that raises a Windows 10+ toast
// through the ToastNotificationManager XML API.
func showScript(title, message, iconPath string) string {
	t := escapePowerShell(escapeXML(title))
	m := escapePowerShell(escapeXML(message))

	logo := ""
	if iconPath != "" {
		uri := "file:///" + strings.ReplaceAll(iconPath, `\`, "/")
		logo = fmt.Sprintf(`<image placement="appLogoOverride" src="%s"/>`, escapePowerShell(escapeXML(uri)))
	}

	return fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom, ContentType = WindowsRuntime] | Out-Null

$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml('<toast><visual><binding template="ToastGeneric">%s<text>%s</text><text>%s</text><text placement="attribution">via %s</text></binding></visual><audio silent="true"/></toast>')
$toast = [Windows.UI.Notifications.ToastNotification]::new($xml)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('{1AC14E77-02E7-4E5D-B744-2EB1AE5198B7}\WindowsPowerShell\v1.0\powershell.exe').Show($toast)
`, logo, t, m, AppName)
}

// Show displays a Windows toast with the app icon.
func Show(title, message string) error {
	iconPath, _ := EnsureIcon()
	cmd := exec.Command("powershell", "-NoProfile", "-Command", showScript(title, message, iconPath))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("toast: %w\n%s", err, out)
	}
	return nil
}
