package providers

import "strings"

// OAuthProvider is the type of an OAuth application integration
type OAuthProvider string

const (
	OAuthAtlassian    OAuthProvider = "atlassian"
	OAuthGitHub       OAuthProvider = "github"
	OAuthSlack        OAuthProvider = "slack"
	OAuthSalesforce   OAuthProvider = "salesforce"
	OAuthGoogle       OAuthProvider = "google"
	OAuthMicrosoft365 OAuthProvider = "microsoft365"
	OAuthNotion       OAuthProvider = "notion"
	OAuthZoom         OAuthProvider = "zoom"
	OAuthCustom       OAuthProvider = "custom"
)

// keyIcon doubles as the icon for custom apps and for types we do not know
const keyIcon = "🔑"

// AllOAuthProviders lists every OAuth application type
func AllOAuthProviders() []OAuthProvider {
	return []OAuthProvider{
		OAuthAtlassian, OAuthGitHub, OAuthSlack, OAuthSalesforce,
		OAuthGoogle, OAuthMicrosoft365, OAuthNotion, OAuthZoom, OAuthCustom,
	}
}

// ParseOAuthProvider is case-insensitive. Unknown types fall back to custom.
func ParseOAuthProvider(s string) OAuthProvider {
	p := OAuthProvider(strings.ToLower(strings.TrimSpace(s)))
	if p.Known() {
		return p
	}
	return OAuthCustom
}

// Known reports whether p is one of the listed types
func (p OAuthProvider) Known() bool {
	for _, known := range AllOAuthProviders() {
		if p == known {
			return true
		}
	}
	return false
}

// Icon returns the glyph shown next to the app type
func (p OAuthProvider) Icon() string {
	switch p {
	case OAuthAtlassian:
		return "▲"
	case OAuthGitHub:
		return "🐙"
	case OAuthSlack:
		return "#"
	case OAuthSalesforce:
		return "☁"
	case OAuthGoogle:
		return "G"
	case OAuthMicrosoft365:
		return "⊞"
	case OAuthNotion:
		return "N"
	case OAuthZoom:
		return "Z"
	default:
		return keyIcon
	}
}

// DisplayName returns the human name of the app type
func (p OAuthProvider) DisplayName() string {
	switch p {
	case OAuthAtlassian:
		return "Atlassian"
	case OAuthGitHub:
		return "GitHub"
	case OAuthSlack:
		return "Slack"
	case OAuthSalesforce:
		return "Salesforce"
	case OAuthGoogle:
		return "Google"
	case OAuthMicrosoft365:
		return "Microsoft 365"
	case OAuthNotion:
		return "Notion"
	case OAuthZoom:
		return "Zoom"
	default:
		return "Custom"
	}
}
