// Package auth registers users and signs them in and out.
//
// Passwords are never stored, only a verifier produced by the password
// package. A successful registration or login issues a session cookie
// (see package session), from that point on the server does not keep any
// information about the session itself.
//
// Login failures do not tell whether the email exists or the password is
// wrong, both cases produce the same message. For the same reason, a login
// for an unknown email still pays the cost of a password verification.
//
// Failed logins are counted per email by a small in-memory throttle. It is
// a best effort protection against online guessing: each instance keeps its
// own counters and they are lost on restart.
package auth
