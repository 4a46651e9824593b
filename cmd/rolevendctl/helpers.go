package main

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/rolevend/rolevend/pkg/audit"
	"github.com/rolevend/rolevend/pkg/authority/awsiam"
	"github.com/rolevend/rolevend/pkg/config"
	"github.com/rolevend/rolevend/pkg/db"
	"github.com/rolevend/rolevend/pkg/notify/sns"
	"github.com/rolevend/rolevend/pkg/policy"
	"github.com/rolevend/rolevend/pkg/vending"
	"github.com/rolevend/rolevend/pkg/vending/store"
	gormstore "github.com/rolevend/rolevend/pkg/vending/store/gorm"
	s3store "github.com/rolevend/rolevend/pkg/vending/store/s3"
)

// buildVendor wires the full vending stack from configuration: Postgres
// session store, template store (S3 when a bucket is configured, Postgres
// otherwise), AWS authority, audit sink and break-glass notifier.
func buildVendor(ctx context.Context, cfg config.Config) (*vending.Vendor, store.TemplateStore, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, nil, err
	}
	sessions := gormstore.NewSessionStore(database)

	var templates store.TemplateStore = gormstore.NewTemplateStore(database)
	if cfg.TemplatesBucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, nil, fmt.Errorf("load AWS config: %w", err)
		}
		templates = s3store.NewTemplateStore(awss3.NewFromConfig(awsCfg), cfg.TemplatesBucket)
	}

	auth, err := awsiam.New(ctx, awsiam.Config{
		Region:    cfg.Region,
		AccountID: cfg.AccountID,
	})
	if err != nil {
		return nil, nil, err
	}

	auditStore, err := audit.NewStore(db.URL())
	if err != nil {
		return nil, nil, fmt.Errorf("open audit store: %w", err)
	}
	sink := audit.NewSink(audit.NewLogger(), auditStore)

	options := []vending.Option{}
	if cfg.NotificationTopic != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, nil, fmt.Errorf("load AWS config: %w", err)
		}
		options = append(options, vending.WithNotifier(sns.New(awssns.NewFromConfig(awsCfg))))
	}

	vendor, err := vending.NewVendor(cfg, sessions, policy.NewRenderer(templates), auth, sink, options...)
	if err != nil {
		return nil, nil, err
	}
	return vendor, templates, nil
}

// requesterID resolves the acting requester: the --requester flag when set,
// the invoking OS user otherwise.
func requesterID(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("USER")
}
