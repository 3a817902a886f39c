package commands

import (
	"context"
	"io"

	"travel-booking/internal/domain/catalog"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/tracing"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUnsupportedMediaType = errs.New("unsupported media type")
	ErrUploadTooLarge       = errs.New("upload exceeds size limit")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type CreatePackageInput struct {
	Title       string
	Description string
	Price       int64
	TotalSeats  int
	ImageURL    *string
}

type UploadInput struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

type CatalogCommands interface {
	CreatePackage(ctx context.Context, in CreatePackageInput) (uuid.UUID, error)
	AdjustTotalSeats(ctx context.Context, packageID uuid.UUID, totalSeats int) error
	UploadPackageImage(ctx context.Context, packageID uuid.UUID, in UploadInput) (string, error)
	UploadBanner(ctx context.Context, in UploadInput) (string, error)
}

type catalogCommandsImpl struct {
	uow           shared.UnitOfWork
	storage       ObjectStorage
	clock         clock.Clock
	maxUploadSize int64
}

func NewCatalogCommands(uow shared.UnitOfWork, storage ObjectStorage, clk clock.Clock, maxUploadSize int64) CatalogCommands {
	return &catalogCommandsImpl{
		uow:           uow,
		storage:       storage,
		clock:         clk,
		maxUploadSize: maxUploadSize,
	}
}

func (c *catalogCommandsImpl) CreatePackage(ctx context.Context, in CreatePackageInput) (uuid.UUID, error) {
	pkg, err := catalog.NewPackage(in.Title, in.Description, in.Price, in.TotalSeats, in.ImageURL, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Packages().Create(ctx, tx.DB(), pkg)
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return pkg.ID(), nil
}

func (c *catalogCommandsImpl) AdjustTotalSeats(ctx context.Context, packageID uuid.UUID, totalSeats int) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pkg, err := tx.Packages().FindByIDForUpdate(ctx, tx.DB(), packageID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPackageNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := pkg.AdjustTotalSeats(totalSeats, c.clock.Now()); err != nil {
			if errs.Is(err, catalog.ErrSeatsAlreadyBooked) {
				return errs.Mark(err, ErrInsufficientSeats)
			}
			return errs.Mark(err, ErrValidation)
		}

		if err := tx.Packages().UpdateSeats(ctx, tx.DB(), pkg); err != nil {
			if infra.IsKind(err, infra.KindCheckViolated) {
				return errs.Mark(err, ErrInsufficientSeats)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *catalogCommandsImpl) UploadPackageImage(ctx context.Context, packageID uuid.UUID, in UploadInput) (url string, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.UploadPackageImage", attribute.String("package.id", packageID.String()))
	defer func() { tracing.End(span, err) }()

	if _, err := c.uow.CommandReads().PackageByID(ctx, packageID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrPackageNotFound
		}
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}

	url, err = c.upload(ctx, "packages/"+packageID.String()+"/", in)
	if err != nil {
		return "", err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Packages().UpdateImage(ctx, tx.DB(), packageID, url, c.clock.Now())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrPackageNotFound
		}
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return url, nil
}

// UploadBanner stores an offer banner; the returned URL becomes the offer's banner reference.
func (c *catalogCommandsImpl) UploadBanner(ctx context.Context, in UploadInput) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.UploadBanner")
	url, err := c.upload(ctx, "offers/banners/", in)
	tracing.End(span, err)
	return url, err
}

func (c *catalogCommandsImpl) upload(ctx context.Context, prefix string, in UploadInput) (string, error) {
	ext, ok := imageExtensions[in.ContentType]
	if !ok {
		return "", errs.Mark(errs.Newf("content type %q", in.ContentType), ErrUnsupportedMediaType)
	}
	if in.Size <= 0 || in.Size > c.maxUploadSize {
		return "", ErrUploadTooLarge
	}

	key := prefix + uuid.NewString() + ext
	url, err := c.storage.Put(ctx, key, in.ContentType, in.Body, in.Size)
	if err != nil {
		return "", errs.Mark(err, ErrStorageUpstream)
	}
	return url, nil
}
