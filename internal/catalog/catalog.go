// Package catalog supplies the pattern catalog consumed by the scan engine:
// a built-in set of secret patterns plus user-defined patterns loaded from
// configuration.
package catalog

import (
	"strings"

	"github.com/leakhound/leakhound/internal/types"
)

func builtin() []types.Pattern {
	return []types.Pattern{
		types.MustPattern("aws_access_key", "AWS Access Key ID", types.SevCritical,
			`\b(AKIA|ASIA)[0-9A-Z]{16}\b`,
			"Amazon access key IDs grant API access when paired with the secret key.",
			"Rotate the key in IAM and move credentials to environment injection."),
		types.MustPattern("github_token", "GitHub Token", types.SevCritical,
			`\bgh[pousr]_[A-Za-z0-9]{36,255}\b`,
			"Personal access, OAuth, server and refresh tokens for GitHub.",
			"Revoke the token at github.com/settings/tokens and re-issue with least scope."),
		types.MustPattern("gitlab_token", "GitLab Personal Access Token", types.SevHigh,
			`\bglpat-[A-Za-z0-9_\-]{20,}\b`,
			"GitLab personal access token.",
			"Revoke under GitLab user settings and rotate CI variables."),
		// no word boundaries: sk- keys are routinely pasted into the
		// middle of URLs, paths and log noise
		types.MustPattern("openai_api_key", "OpenAI API Key", types.SevHigh,
			`sk-(proj-)?[A-Za-z0-9_\-]{32,}`,
			"OpenAI secret keys, including project-scoped sk-proj keys.",
			"Rotate the key in the OpenAI dashboard and load it from the environment."),
		types.MustPattern("anthropic_api_key", "Anthropic API Key", types.SevHigh,
			`\bsk-ant-[A-Za-z0-9_\-]{32,}\b`,
			"Anthropic API key.",
			"Rotate the key in the Anthropic console."),
		types.MustPattern("slack_token", "Slack Token", types.SevHigh,
			`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`,
			"Slack bot, app, user and legacy tokens.",
			"Revoke the token from the Slack app config and reinstall the app."),
		types.MustPattern("slack_webhook", "Slack Webhook URL", types.SevMed,
			`https://hooks\.slack\.com/services/T[A-Za-z0-9]+/B[A-Za-z0-9]+/[A-Za-z0-9]+`,
			"Incoming webhook URLs allow posting as your workspace.",
			"Regenerate the webhook; treat the URL as a secret."),
		types.MustPattern("stripe_secret", "Stripe Secret Key", types.SevCritical,
			`\b(sk|rk)_live_[A-Za-z0-9]{24,}\b`,
			"Live-mode Stripe secret or restricted keys.",
			"Roll the key in the Stripe dashboard immediately."),
		types.MustPattern("google_api_key", "Google API Key", types.SevHigh,
			`\bAIza[0-9A-Za-z_\-]{35}\b`,
			"Google Cloud API key.",
			"Regenerate the key and add application restrictions."),
		types.MustPattern("sendgrid_api_key", "SendGrid API Key", types.SevHigh,
			`\bSG\.[A-Za-z0-9_\-]{22}\.[A-Za-z0-9_\-]{43}\b`,
			"SendGrid API key.",
			"Delete the key in SendGrid settings and create a scoped replacement."),
		types.MustPattern("npm_token", "npm Token", types.SevHigh,
			`\bnpm_[A-Za-z0-9]{36}\b`,
			"npm automation or publish token.",
			"Revoke via `npm token revoke` and re-create with 2FA enforcement."),
		types.MustPattern("private_key_block", "Private Key Block", types.SevCritical,
			`-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY( BLOCK)?-----`,
			"PEM-encoded private key material.",
			"Remove the key from the repo, rotate it, and store it in a secret manager."),
		types.MustPattern("jwt", "JSON Web Token", types.SevMed,
			`\beyJ[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]{10,}\b`,
			"Signed JWTs can embed live session or API claims.",
			"Invalidate the signing key if the token is production-issued."),
		types.MustPattern("twilio_api_key", "Twilio API Key SID", types.SevMed,
			`\bSK[0-9a-fA-F]{32}\b`,
			"Twilio API key SID.",
			"Delete the key in the Twilio console and rotate dependent services."),
		types.MustPattern("heroku_api_key", "Heroku API Key", types.SevMed,
			`(?i)heroku[a-z0-9_ \-]{0,20}[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`,
			"Heroku platform API key near a heroku identifier.",
			"Regenerate the key with `heroku authorizations`."),
		types.MustPattern("db_uri_creds", "Database URI Credentials", types.SevHigh,
			`\b(postgres|postgresql|mysql|mongodb(\+srv)?)://[^:/\s]+:[^@\s]+@[^\s"']+`,
			"Connection URI embedding a username and password.",
			"Move credentials to the environment and rotate the database password."),
	}
}

// Builtin returns a fresh copy of the built-in catalog.
func Builtin() []types.Pattern {
	return types.ClonePatterns(builtin())
}

// IDs returns the built-in pattern IDs in catalog order.
func IDs() []string {
	ps := builtin()
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

// ByID looks up one built-in pattern.
func ByID(id string) (types.Pattern, bool) {
	for _, p := range builtin() {
		if p.ID == id {
			return p, true
		}
	}
	return types.Pattern{}, false
}

// Filter applies comma-separated enable/disable ID lists, mirroring the CLI
// flags. An empty enable list keeps everything not disabled.
func Filter(patterns []types.Pattern, enable, disable string) []types.Pattern {
	if enable == "" && disable == "" {
		return patterns
	}
	allowed := idSet(enable)
	blocked := idSet(disable)
	var out []types.Pattern
	for _, p := range patterns {
		if enable != "" && !allowed[p.ID] {
			continue
		}
		if blocked[p.ID] {
			continue
		}
		out = append(out, p)
	}
	return out
}

func idSet(csv string) map[string]bool {
	out := map[string]bool{}
	if csv == "" {
		return out
	}
	for _, id := range strings.Split(csv, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out[id] = true
		}
	}
	return out
}
