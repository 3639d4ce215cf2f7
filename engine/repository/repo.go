package repository

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	MongoConfig config.MongoDBConfig
}

func NewRepository(params Params) (domain.Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	uri := params.MongoConfig.GetURI()

	mongoOpts := options.Client().ApplyURI(uri)
	if params.MongoConfig.CAPem != "" && params.MongoConfig.CAPemEnable {
		caPool := x509.NewCertPool()
		caPool.AppendCertsFromPEM([]byte(params.MongoConfig.CAPem))
		tlsConfig := &tls.Config{
			RootCAs:            caPool,
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: false,
		}
		mongoOpts.SetTLSConfig(tlsConfig)
	}

	client, err := mongo.Connect(mongoOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w, host:%s, tls:%+v", err, params.MongoConfig.Host, params.MongoConfig.CAPemEnable)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w, host:%s, tls:%+v", err, params.MongoConfig.Host, params.MongoConfig.CAPemEnable)
	}

	dbName := params.MongoConfig.Database
	if dbName == "" {
		dbName = "riskboard"
	}

	return &repo{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

type repo struct {
	client *mongo.Client
	db     *mongo.Database
}

const (
	snapshotCollection    = "snapshots"
	defaultTimestampField = "created_at"
)

// snapshotDoc is the stored shape of a snapshot summary.
type snapshotDoc struct {
	ID           string    `bson:"_id"`
	Generation   int64     `bson:"generation"`
	CPUPercent   int       `bson:"cpu_percent"`
	MemPercent   int       `bson:"memory_percent"`
	IOPercent    int       `bson:"io_percent"`
	ProcessCount int       `bson:"process_count"`
	WorkloadType string    `bson:"workload_type"`
	Label        string    `bson:"label"`
	ProbSafe     float64   `bson:"prob_safe"`
	ProbUnsafe   float64   `bson:"prob_unsafe"`
	ProbDeadlock float64   `bson:"prob_deadlock"`
	Confidence   float64   `bson:"confidence"`
	Source       string    `bson:"source"`
	DisplayLabel string    `bson:"display_label"`
	RiskTier     string    `bson:"risk_tier"`
	State        string    `bson:"state"`
	CreatedAt    time.Time `bson:"created_at"`
}

func newSnapshotDoc(s *domain.SnapshotSummary) snapshotDoc {
	return snapshotDoc{
		ID:           s.ID,
		Generation:   int64(s.Generation),
		CPUPercent:   s.Parameters.CPUPercent,
		MemPercent:   s.Parameters.MemoryPercent,
		IOPercent:    s.Parameters.IOPercent,
		ProcessCount: s.Parameters.ProcessCount,
		WorkloadType: string(s.Parameters.WorkloadType),
		Label:        string(s.Classification.Label),
		ProbSafe:     s.Classification.Probabilities.Safe,
		ProbUnsafe:   s.Classification.Probabilities.Unsafe,
		ProbDeadlock: s.Classification.Probabilities.Deadlock,
		Confidence:   s.Classification.Confidence,
		Source:       string(s.Classification.Source),
		DisplayLabel: s.Verdict.DisplayLabel,
		RiskTier:     string(s.Verdict.RiskTier),
		State:        string(s.Verdict.State),
		CreatedAt:    s.CreatedAt,
	}
}

// summary rebuilds the derived verdict fields from the stored tier.
func (d snapshotDoc) summary() *domain.SnapshotSummary {
	tier := domain.RiskTier(d.RiskTier)
	style := domain.StyleLow
	if tier == domain.RiskHigh {
		style = domain.StyleHigh
	}
	return &domain.SnapshotSummary{
		ID:         d.ID,
		Generation: uint64(d.Generation),
		Parameters: domain.LoadParameters{
			CPUPercent:    d.CPUPercent,
			MemoryPercent: d.MemPercent,
			IOPercent:     d.IOPercent,
			ProcessCount:  d.ProcessCount,
			WorkloadType:  domain.WorkloadType(d.WorkloadType),
		},
		Classification: domain.ClassificationResult{
			Label:         domain.Label(d.Label),
			Probabilities: domain.Probabilities{Safe: d.ProbSafe, Unsafe: d.ProbUnsafe, Deadlock: d.ProbDeadlock},
			Confidence:    d.Confidence,
			Source:        domain.ResultSource(d.Source),
		},
		Verdict: domain.DisplayVerdict{
			DisplayLabel: d.DisplayLabel,
			RiskTier:     tier,
			StyleClass:   style,
			Badge:        tier.Badge(),
			State:        domain.SystemState(d.State),
		},
		CreatedAt: d.CreatedAt,
	}
}

func (r *repo) InsertSnapshot(ctx context.Context, snapshot *domain.SnapshotSummary) error {
	_, err := r.db.Collection(snapshotCollection).InsertOne(ctx, newSnapshotDoc(snapshot))
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

func (r *repo) QuerySnapshots(ctx context.Context, opt *domain.QuerySnapshotOptions) error {
	filter := bson.M{}
	if opt.Source != "" {
		filter["source"] = string(opt.Source)
	}
	findOpts := options.Find().SetSort(bson.D{{Key: defaultTimestampField, Value: -1}})
	if opt.Limit > 0 {
		findOpts.SetLimit(int64(opt.Limit))
	}

	cursor, err := r.db.Collection(snapshotCollection).Find(ctx, filter, findOpts)
	if err != nil {
		return fmt.Errorf("find snapshots: %w", err)
	}
	var docs []snapshotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return fmt.Errorf("decode snapshots: %w", err)
	}
	opt.Result = make([]*domain.SnapshotSummary, 0, len(docs))
	for _, d := range docs {
		opt.Result = append(opt.Result, d.summary())
	}
	return nil
}
