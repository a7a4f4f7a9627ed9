package quorum

import (
	"github.com/dashpay/mnlist-engine/internal/blskey"
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// VerifyResult breaks spec §4.3.3 step 3's two signature checks out
// individually so a caller can log which one failed, while Valid() gives the aggregate
// used by the engine's has_valid_quorums.
type VerifyResult struct {
	ThresholdSigValid bool
	AggregateSigValid bool
}

// Valid is the conjunction the engine folds into has_valid_quorums.
func (r VerifyResult) Valid() bool {
	return r.ThresholdSigValid && r.AggregateSigValid
}

// commitmentHash reconstructs spec §4.3.3 step 3a's commitment hash over
// the fields that identify what the quorum committed to signing.
func commitmentHash(q *model.LLMQEntry) hash256.Hash256 {
	w := wire.NewWriter()
	w.WriteByte(byte(q.LLMQType))
	w.WriteHash256(q.LLMQHash)
	if q.ValidMembersBitset != nil {
		w.WriteVarBytes(q.ValidMembersBitset.Bytes())
	}
	w.WriteFixed(q.QuorumPublicKey[:])
	w.WriteHash256(q.QuorumVVecHash)
	return hash256.SHA256D(w.Bytes())
}

// signerKeys selects the operator public keys of the members flagged in
// q.SignersBitset, in member order — the aggregate signature's input set
// (spec §4.3.3 step 3c).
func signerKeys(q *model.LLMQEntry, members []*model.MasternodeEntry) []blskey.PublicKey {
	if q.SignersBitset == nil {
		return nil
	}
	pks := make([]blskey.PublicKey, 0, len(members))
	for i, m := range members {
		if q.SignersBitset.Test(uint32(i)) {
			pks = append(pks, m.OperatorPublicKey.Key())
		}
	}
	return pks
}

// Verify implements spec §4.3.3 step 3: reconstruct the commitment hash,
// verify threshold_sig against quorum_public_key, and verify
// all_commitment_agg_sig as an aggregate of the signer set selected from
// members by signers_bitset. BLS scheme (legacy vs basic) follows
// q.Version.UseBLSLegacy().
func Verify(q *model.LLMQEntry, members []*model.MasternodeEntry) (VerifyResult, error) {
	msg := commitmentHash(q)

	thresholdOK, err := blskey.Verify(q.QuorumPublicKeyTyped(), msg[:], q.ThresholdSigTyped())
	if err != nil {
		return VerifyResult{}, err
	}

	pks := signerKeys(q, members)
	aggSig := q.AllCommitmentAggSigTyped()
	aggregateOK, err := blskey.VerifyAggregate(pks, msg[:], aggSig, aggSig.Scheme)
	if err != nil {
		return VerifyResult{ThresholdSigValid: thresholdOK}, err
	}

	return VerifyResult{ThresholdSigValid: thresholdOK, AggregateSigValid: aggregateOK}, nil
}
