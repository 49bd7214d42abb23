// Package iam groups identity and tenancy for the Riderota platform.
//
// # Overview
//
//   - iam/tenant      : host to tenant slug resolution, path rewrite middleware
//   - iam/auth        : token codec, verify-then-rotate sessions, cookies, middleware
//   - iam/invitation  : invitation entity, classification, service, notifiers
//   - iam/user        : user entity, identity provisioning, password login
//   - iam/iamcontainer: wires the above for cmd/server
//
// # Tenancy
//
// Every request arrives on <slug>.<ROOT_DOMAIN>. The tenant middleware
// resolves the slug from the Host header and rewrites the path to
// /<slug><path>, so every route below is registered under /:tenant. The
// root domain itself, foreign hosts and multi-label prefixes are rejected
// with 400 TENANT_UNRESOLVABLE.
//
// # Sessions
//
// A session is a pair of HS256 JWTs held in HttpOnly cookies scoped to
// .<ROOT_DOMAIN>. The access token is checked first; when it fails the
// refresh token is checked and, if valid, both are reissued for the same
// subject and tenant and written to the response before the handler runs.
// A session minted for one tenant is refused (403) on every other tenant's
// host.
//
// # Invitations
//
// An admin invites an email into their own tenant with a role other than
// SUPERADMIN. The invitee opens https://<slug>.<ROOT_DOMAIN>/invite/<token>;
// the UI asks GET /invitations/:token which page to render:
//
//	VALID           → 200 register
//	EXPIRED         → 410 invite-expired
//	TENANT_MISMATCH → 403 invite-wrong-tenant
//	NOT_FOUND       → 404 invite-invalid
//
// Tenant is compared before expiry. Registration classifies again and then
// creates the user with the invitation's email, role and tenant; any role
// or tenant the client submits is ignored.
//
// # ──────────────────────────────────────────────────────
// # ENDPOINT REFERENCE
// # ──────────────────────────────────────────────────────
//
// ### POST /auth/login
//
//	{ "email": "dana@acme.test", "password": "..." }
//
// Response 200 (sets accessToken + refreshToken cookies): the user.
// Error responses: 400 (validation), 401 (unknown email or wrong password).
//
// ### POST /auth/logout
//
// Expires both cookies. Response 204.
//
// ### GET /auth/me
//
// Authentication: session cookies or Authorization: Bearer <access token>.
// Response 200: the user.
//
// ### POST /api/invitations
//
// Authentication required.
//
//	{ "email": "...", "role": "ADMIN" | "EMPLOYEE" | "DRIVER", "welcome_message": "..." }
//
// Response 201: the invitation (without its token, which only travels by
// email).
//
// ### GET /invitations/:token
//
//	{ "state": "VALID", "page": "register", "invitation": { ... } }
//
// ### POST /register
//
//	{ "token": "...", "name": "...", "password": "...", "role": "ignored", "tenant_slug": "ignored" }
//
// Response 201 (sets session cookies): { "user": { ... } }.
// Error responses carry details.page: 410 invite-expired,
// 403 invite-wrong-tenant, 404 invite-invalid; 409 USER_IDENTITY_CONFLICT.
package iam
