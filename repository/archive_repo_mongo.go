package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArchiveRepository stores raw XML alongside the relational data so the
// source document can always be replayed or audited.
type ArchiveRepository interface {
	Arquivar(ctx context.Context, doc *ArquivoXML) error
	BuscarPorChaveAcesso(ctx context.Context, chave string) (*ArquivoXML, error)
}

type ArquivoXML struct {
	ChaveAcesso string    `bson:"chave_acesso"`
	NFeID       int64     `bson:"nfe_id"`
	NomeArquivo string    `bson:"nome_arquivo"`
	Conteudo    string    `bson:"conteudo"`
	ArquivadoEm time.Time `bson:"arquivado_em"`
}

type MongoArchiveRepo struct {
	DB *mongo.Client
}

func NewMongoArchiveRepo(db *mongo.Client) *MongoArchiveRepo {
	return &MongoArchiveRepo{DB: db}
}

// Arquivar upserts on the access key: re-archiving the same document is a
// no-op rather than a growing pile of copies.
func (r *MongoArchiveRepo) Arquivar(ctx context.Context, doc *ArquivoXML) error {
	if doc.ArquivadoEm.IsZero() {
		doc.ArquivadoEm = time.Now().UTC()
	}
	_, err := r.DB.Database("watchman").Collection("nfe_archive").
		UpdateOne(ctx,
			bson.M{"chave_acesso": doc.ChaveAcesso},
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true),
		)
	return err
}

// BuscarPorChaveAcesso fetches the archived XML for one access key.
func (r *MongoArchiveRepo) BuscarPorChaveAcesso(ctx context.Context, chave string) (*ArquivoXML, error) {
	var doc ArquivoXML
	err := r.DB.Database("watchman").Collection("nfe_archive").
		FindOne(ctx, bson.M{"chave_acesso": chave}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
