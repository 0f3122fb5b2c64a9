// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storj.io/common/cfgstruct"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/process"
	"storj.io/topology/pkg/scheduler"
	"storj.io/topology/pkg/simclass"
	"storj.io/topology/pkg/topology"
	"storj.io/topology/storage/boltdb"
	"storj.io/topology/storage/redis"
)

// Topologyd defines the configuration of a topology daemon.
type Topologyd struct {
	Package string `help:"package the topology service belongs to" default:"sep"`
	Objects string `help:"objects to create at startup, as class=count pairs" default:"provision-drive=4,sas-port=2,lun=2"`
	Journal string `help:"path of the lifecycle journal, empty to disable" default:""`
	Publish string `help:"redis url lifecycle notifications are published to, empty to disable" default:""`

	Topology topology.Config
	Monitor  scheduler.Config
}

var (
	rootCmd = &cobra.Command{
		Use:   "topologyd",
		Short: "Object topology service",
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the topology service with simulated objects",
		RunE:  cmdRun,
	}
	setupCmd = &cobra.Command{
		Use:         "setup [config file]",
		Short:       "Create a config file",
		Args:        cobra.ExactArgs(1),
		RunE:        cmdSetup,
		Annotations: map[string]string{"type": "setup"},
	}
	classesCmd = &cobra.Command{
		Use:   "classes",
		Short: "List the known object classes",
		RunE:  cmdClasses,
	}
	journalCmd = &cobra.Command{
		Use:   "journal [path]",
		Short: "Print the lifecycle journal",
		Args:  cobra.ExactArgs(1),
		RunE:  cmdJournal,
	}

	runCfg   Topologyd
	setupCfg Topologyd
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(journalCmd)
	defaults := cfgstruct.DefaultsFlag(rootCmd)
	process.Bind(runCmd, &runCfg, defaults)
	process.Bind(setupCmd, &setupCfg, defaults)
}

func cmdRun(cmd *cobra.Command, args []string) (err error) {
	ctx := process.Ctx(cmd)
	log := zap.L()

	packageID, err := fbe.ParsePackageID(runCfg.Package)
	if err != nil {
		return err
	}
	objects, err := ParseObjects(runCfg.Objects)
	if err != nil {
		return err
	}

	classes := make([]topology.Class, 0, len(objects))
	for _, object := range objects {
		classes = append(classes, simclass.New(log.Named("class"), object.Class))
	}
	registry, err := topology.NewRegistry(log.Named("registry"), classes...)
	if err != nil {
		return err
	}

	service := topology.New(log.Named("topology"), packageID, registry, runCfg.Topology)

	var notifiers topology.Notifiers
	if runCfg.Journal != "" {
		var client *boltdb.Client
		client, err = boltdb.New(log.Named("journal"), runCfg.Journal)
		if err != nil {
			return err
		}
		defer func() { err = errs.Combine(err, client.Close()) }()

		var journal *boltdb.Journal
		journal, err = boltdb.NewJournal(client)
		if err != nil {
			return err
		}
		if err := recoverJournal(ctx, log, journal, packageID); err != nil {
			return err
		}
		notifiers = append(notifiers, journal)
	}
	if runCfg.Publish != "" {
		var client *redis.Client
		client, err = redis.NewClientFrom(log.Named("publish"), runCfg.Publish)
		if err != nil {
			return err
		}
		defer func() { err = errs.Combine(err, client.Close()) }()

		notifiers = append(notifiers, redis.NewPublisher(client))
	}
	if len(notifiers) > 0 {
		service.SetNotifier(notifiers)
	}

	if err := service.Init(ctx); err != nil {
		return err
	}

	created, createErr := createObjects(ctx, service, objects)
	defer func() {
		err = errs.Combine(err, destroyObjects(context.Background(), service, created), service.Destroy(context.Background()))
	}()
	if createErr != nil {
		return createErr
	}

	pool, err := service.GetSpareDrivePool(ctx, fbe.SpareDriveTypeUnconsumed)
	if err != nil {
		return err
	}
	log.Info("topology ready",
		zap.Stringer("package", service.PackageID()),
		zap.Int("classes", len(service.Registry().ClassIDs())),
		zap.Int("objects", len(created)),
		zap.Int("spares", pool.Count))

	monitor := scheduler.New(log.Named("monitor"), service, runCfg.Monitor)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := monitor.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return errs.Combine(group.Wait(), monitor.Close())
}

// recoverJournal reports objects a previous run left behind and starts a
// fresh journal.
func recoverJournal(ctx context.Context, log *zap.Logger, journal *boltdb.Journal, packageID fbe.PackageID) error {
	live, err := journal.Live(ctx, packageID.String())
	if err != nil {
		return err
	}
	for id, class := range live {
		log.Warn("object was not destroyed by the previous run",
			zap.Stringer("object", id), zap.String("class", class))
	}
	return journal.Truncate(ctx)
}

func createObjects(ctx context.Context, service *topology.Service, objects []ObjectCount) ([]fbe.ObjectID, error) {
	var created []fbe.ObjectID
	for _, object := range objects {
		for i := 0; i < object.Count; i++ {
			id, err := service.CreateObject(ctx, topology.CreateRequest{
				ClassID:    object.Class,
				ObjectID:   fbe.ObjectIDInvalid,
				Parameters: objectParameters(object.Class, i),
			})
			if err != nil {
				return created, err
			}
			created = append(created, id)
		}
	}
	return created, nil
}

func destroyObjects(ctx context.Context, service *topology.Service, ids []fbe.ObjectID) error {
	var group errs.Group
	for i := len(ids) - 1; i >= 0; i-- {
		group.Add(service.DestroyObject(ctx, ids[i]))
	}
	return group.Err()
}

func cmdSetup(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("config file already exists (%v)", args[0])
	}
	return process.SaveConfig(cmd, args[0])
}

func cmdClasses(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tFamily\t")
	for id := fbe.ClassIDInvalid + 1; id < fbe.ClassIDLast; id++ {
		if id.IsMarker() {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t\n", uint32(id), id, classFamily(id))
	}
	return w.Flush()
}

func cmdJournal(cmd *cobra.Command, args []string) (err error) {
	ctx := process.Ctx(cmd)

	client, err := boltdb.New(zap.L().Named("journal"), args[0])
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, client.Close()) }()

	journal, err := boltdb.NewJournal(client)
	if err != nil {
		return err
	}
	entries, err := journal.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Sequence\tKind\tPackage\tObject\tClass\tGeneration\tError\t")
	for _, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t\n",
			entry.Sequence, entry.Kind, entry.Package, entry.ObjectID, entry.ClassID, entry.Generation, entry.Err)
	}
	return w.Flush()
}

func classFamily(id fbe.ClassID) string {
	switch {
	case id.IsBoard():
		return "board"
	case id.IsPort():
		return "port"
	case id.IsLCC():
		return "lcc"
	case id.IsEnclosure():
		return "enclosure"
	case id.IsPhysicalDrive():
		return "physical-drive"
	case id.IsLogicalDrive():
		return "logical-drive"
	case id.IsRaid():
		return "raid"
	case id.IsEnvironmentMgmt():
		return "environment-mgmt"
	default:
		return "-"
	}
}

func main() {
	process.Exec(rootCmd)
}
