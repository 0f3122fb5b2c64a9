// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package topology

import (
	"context"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
)

// NotificationKind says what happened to an object.
type NotificationKind uint8

// List of notification kinds.
const (
	ObjectCreated = NotificationKind(iota + 1)
	ObjectDestroyed
	ObjectDestroyFailed
)

// String implements fmt.Stringer.
func (kind NotificationKind) String() string {
	switch kind {
	case ObjectCreated:
		return "created"
	case ObjectDestroyed:
		return "destroyed"
	case ObjectDestroyFailed:
		return "destroy-failed"
	default:
		return "unknown"
	}
}

// Notification describes one lifecycle change.
type Notification struct {
	Kind       NotificationKind
	Package    fbe.PackageID
	ObjectID   fbe.ObjectID
	ClassID    fbe.ClassID
	Generation uint64
	Time       time.Time
	Err        string
}

// Notifier receives lifecycle notifications. It is called outside the
// table lock; a failing notifier never fails the operation.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// Statistics counts lifecycle operations since the service was created.
type Statistics struct {
	Created   uint64
	Destroyed uint64
}

func (service *Service) notify(ctx context.Context, notification Notification) {
	if service.notifier == nil {
		return
	}
	notification.Package = service.packageID
	notification.Time = time.Now().UTC()
	if err := service.notifier.Notify(ctx, notification); err != nil {
		service.log.Warn("notification failed",
			zap.Stringer("kind", notification.Kind),
			zap.Stringer("object", notification.ObjectID),
			zap.Error(err))
	}
}

// Notifiers sends every notification to each of its notifiers in order.
type Notifiers []Notifier

// Notify implements Notifier.
func (notifiers Notifiers) Notify(ctx context.Context, notification Notification) error {
	var group errs.Group
	for _, notifier := range notifiers {
		group.Add(notifier.Notify(ctx, notification))
	}
	return group.Err()
}
