package ui

import (
	"os"
	"os/exec"
	"strings"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogWarn  = "dialog-warning"

	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"
)

func NotifyWarn(title, text string) {
	NotifySend(UrgencyNormal, title, text, IconDialogWarn)
}

func NotifyError(title, text string) {
	NotifySend(UrgencyCritical, title, text, IconDialogError)
}

func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		// usually the case when running from launchd, cron or a systemd timer
		Debug("Not sending notification, missing env variable 'DISPLAY'")
		return
	}

	cmd := exec.Command("who")
	output, err := cmd.Output()
	if err != nil {
		Warning("Cannot send notification, unable to find user of display session: %v", err)
		return
	}
	lines := strings.Split(string(output), "\n")
	var user string
	for _, line := range lines {
		if strings.Contains(line, display) {
			user = strings.TrimSpace(strings.Fields(line)[0])
			break
		}
	}

	if len(user) <= 0 {
		Warning("Cannot send notification, unable to detect user of current display session")
		return
	}

	cmd = exec.Command("id", "-u", user)
	output, err = cmd.Output()
	userIdString := strings.TrimSpace(string(output))
	if len(userIdString) <= 0 {
		Warning("Cannot send notification, unable to detect user id of %s: %v", user, err)
		return
	}

	cmd = exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userIdString+"/bus",
		"notify-send",
		"-a", "smartfan",
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	err = cmd.Run()
	if err != nil {
		Error("Error sending notification: %v", err)
	}
}
