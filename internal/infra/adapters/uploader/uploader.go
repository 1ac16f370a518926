// uploader mirrors archived files to an Amazon S3 bucket using the AWS
// v1 SDK. Implements the ports.ForUploading interface.
package uploader

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sa6mwa/podarchiver/internal/app/humanreadable"
	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

var (
	ErrNilPointerRequest error = errors.New("received nil pointer as request")
	ErrFilenameMissing   error = errors.New("empty or missing filename given")
)

type forUploading struct {
	session *session.Session
}

func New(config model.MirrorConfig) ports.ForUploading {
	s := session.Must(session.NewSessionWithOptions(session.Options{
		Profile: config.Profile,
		Config: aws.Config{
			Region: aws.String(config.Region),
		},
	}))
	return &forUploading{
		session: s,
	}
}

func (u *forUploading) getContentType(filename string) (contentType string, err error) {
	mimetype.SetLimit(1024 * 1024)
	mimeType, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	return mimeType.String(), nil
}

// Upload r.From as key r.To to bucket r.Store. If ContentType is
// empty in r, it is detected from the content of r.From.
func (u *forUploading) Upload(ctx context.Context, r *ports.ForUploadingRequest) error {
	l := logger.FromContext(ctx)
	if err := normalize(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.ContentType) == "" {
		var err error
		r.ContentType, err = u.getContentType(r.From)
		if err != nil {
			return err
		}
	}
	s3path := "s3://" + path.Join(r.Store, r.To)
	fi, err := os.Stat(r.From)
	if err != nil {
		return err
	}
	l.Info("Uploading to S3", "file", r.From, "to", s3path, "storageClass", r.StorageClass, "size", fi.Size(), "humanSize", humanreadable.IEC(fi.Size()))
	f, err := os.Open(r.From)
	if err != nil {
		return err
	}
	defer f.Close()
	uploader := s3manager.NewUploader(u.session)
	result, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(r.Store),
		Key:          aws.String(r.To),
		ContentType:  aws.String(r.ContentType),
		Body:         f,
		StorageClass: aws.String(r.StorageClass),
	})
	if err != nil {
		return err
	}
	l.Info("Upload succeeded", "location", aws.StringValue(&result.Location))
	return nil
}

// normalize validates r and fills in defaults.
func normalize(r *ports.ForUploadingRequest) error {
	if r == nil {
		return ErrNilPointerRequest
	}
	if strings.TrimSpace(r.From) == "" {
		return ErrFilenameMissing
	}
	if strings.TrimSpace(r.To) == "" {
		r.To = filepath.ToSlash(r.From)
	}
	r.To = strings.TrimPrefix(r.To, "/")
	if r.StorageClass == "" {
		r.StorageClass = "STANDARD"
	}
	return nil
}
