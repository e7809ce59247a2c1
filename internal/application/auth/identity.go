package auth

import "strings"

// InternalEmailDomain dominio interno: los usuarios entran por username,
// el email solo existe para mantener unicidad en la tabla de perfiles.
const InternalEmailDomain = "kiosco.local"

// NormalizeUsername baja a minúsculas y recorta espacios.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// InternalEmailFromUsername deriva el email interno del username.
func InternalEmailFromUsername(username string) string {
	return NormalizeUsername(username) + "@" + InternalEmailDomain
}
