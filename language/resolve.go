package language

import "github.com/tcriess/lightspeed-frontdesk/types"

// Resolver computes the translation direction of a message from the sender's
// role, the room's current guest language and the configured defaults.
type Resolver struct {
	// Staff is the canonical staff language, receptionist/admin speech and text
	// is always assumed to be in this language.
	Staff string

	// DefaultGuest is the fallback guest language used as long as no guest
	// language has been resolved for a room.
	DefaultGuest string
}

// Effective returns the language stored in the session on join: staff roles
// always normalize to the canonical staff language, guests use the requested
// language or the default.
func (r Resolver) Effective(role types.Role, requested string) string {
	if role.IsStaff() {
		return r.Staff
	}
	if requested != "" {
		return requested
	}
	return r.DefaultGuest
}

// Direction resolves (source, target) for one message.
//
// Staff messages always originate in the staff language and target the room's
// current guest language, if no guest has ever joined (or the guest is gone)
// the default guest language is targeted. Guest messages use the explicit
// per-message language, then the session language, then the default, and
// always target the staff language.
func (r Resolver) Direction(room *types.Room, role types.Role, explicit, sessionLanguage string) (string, string) {
	if role.IsStaff() {
		target := r.DefaultGuest
		if room != nil && room.GuestLanguage != "" {
			target = room.GuestLanguage
		}
		return r.Staff, target
	}
	source := explicit
	if source == "" {
		source = sessionLanguage
	}
	if source == "" {
		source = r.DefaultGuest
	}
	return source, r.Staff
}

// TranscriptionLanguage is the source language handed to the transcription
// collaborator, resolved the same way as the message source.
func (r Resolver) TranscriptionLanguage(role types.Role, explicit, sessionLanguage string) string {
	src, _ := r.Direction(nil, role, explicit, sessionLanguage)
	return src
}
