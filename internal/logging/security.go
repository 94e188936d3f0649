// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	eventSystemStartup      = "sys_startup"
	eventSystemShutdown     = "sys_shutdown"
	eventAuthzFailure       = "authz_fail"
	eventAdminClaimed       = "authz_admin_claimed"
	eventAdminClaimRejected = "authz_admin_claim_rejected"
	eventChannelBound       = "sys_channel_bound"
	eventAccessRevoked      = "authz_access_revoked"
	eventIntegrity          = "sys_integrity_violation"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger emits events using the OWASP logging vocabulary.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) log(event string, level string, fields ...zap.Field) {
	fields = append(fields, zap.String("event", event), zap.String("type", "security"))

	switch level {
	case "WARN":
		s.l.Warn(event, fields...)
	case "CRITICAL":
		s.l.Error(event, fields...)
	default:
		s.l.Info(event, fields...)
	}
}

func (s *SecurityLogger) SystemStartup() {
	s.log(eventSystemStartup, "INFO")
}

func (s *SecurityLogger) SystemShutdown() {
	s.log(eventSystemShutdown, "INFO")
}

func (s *SecurityLogger) AuthzFailure(subject, resource string) {
	s.log(eventAuthzFailure, "CRITICAL", zap.String("subject", subject), zap.String("resource", resource))
}

func (s *SecurityLogger) AdminClaimed(userID string) {
	s.log(eventAdminClaimed, "WARN", zap.String("user_id", userID))
}

func (s *SecurityLogger) AdminClaimRejected(userID string) {
	s.log(eventAdminClaimRejected, "WARN", zap.String("user_id", userID))
}

func (s *SecurityLogger) ChannelBound(adminUserID, channelID string) {
	s.log(eventChannelBound, "WARN", zap.String("admin_user_id", adminUserID), zap.String("channel_id", channelID))
}

func (s *SecurityLogger) AccessRevoked(userID, reason string) {
	s.log(eventAccessRevoked, "INFO", zap.String("user_id", userID), zap.String("reason", reason))
}

func (s *SecurityLogger) IntegrityViolation(resource, detail string) {
	s.log(eventIntegrity, "CRITICAL", zap.String("resource", resource), zap.String("detail", detail))
}

func NewSecurityLogger(l *zap.Logger) *SecurityLogger {
	s := new(SecurityLogger)
	s.l = l

	return s
}
