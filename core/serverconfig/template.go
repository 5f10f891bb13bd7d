package serverconfig

import "strings"

const managedNote = " # DO NOT UPDATE FROM HERE. This is updated on server start from the manager's %s setting."

// MaterializeDefault renders a complete document for a fresh install, with
// the authoritative values in the managed fields.
func MaterializeDefault(a Authoritative) Document {
	v := a.rendered()
	note := func(setting string) string {
		return strings.Replace(managedNote, "%s", setting, 1)
	}

	var b strings.Builder
	lines := []string{
		"# This is the BeamMP-Server config file.",
		"# Help & Documentation: `https://wiki.beammp.com/en/home/server-maintenance`",
		"# IMPORTANT: Fill in the AuthKey with the key you got from `https://keymaster.beammp.com/` on the left under \"Keys\"",
		"",
		"[" + Section + "]",
		FieldName + " = " + v[FieldName] + note("server name"),
		FieldPort + " = " + v[FieldPort] + note("server port"),
		"# AuthKey has to be filled out in order to run the server",
		FieldAuthKey + " = " + v[FieldAuthKey] + note("auth key"),
		"# Whether to log chat messages in the console / log",
		"LogChat = true",
		"# Add custom identifying tags to your server to make it easier to find. Format should be TagA,TagB,TagC. Note the comma seperation.",
		`Tags = "Freeroam"`,
		"Debug = false",
		"Private = true",
		"MaxCars = 1",
		FieldMaxPlayers + " = " + v[FieldMaxPlayers] + note("max players"),
		FieldMap + " = " + v[FieldMap] + note("start map"),
		`Description = "BeamMP Server"`,
		`ResourceFolder = "Resources"`,
		"",
		"[Misc]",
		"# Hides the periodic update message which notifies you of a new server version. You should really keep this on and always update as soon as possible. For more information visit https://wiki.beammp.com/en/home/server-maintenance#updating-the-server. An update message will always appear at startup regardless.",
		"ImScaredOfUpdates = false",
		"# If SendErrors is `true`, the server will send helpful info about crashes and other issues back to the BeamMP developers. This info may include your config, who is on your server at the time of the error, and similar general information. This kind of data is vital in helping us diagnose and fix issues faster. This has no impact on server performance. You can opt-out of this system by setting this to `false`",
		"SendErrorsShowMessage = true",
		"# You can turn on/off the SendErrors message you get on startup here",
		"SendErrors = true",
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return Document{content: []byte(b.String())}
}
