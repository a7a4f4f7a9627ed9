package quorum

import "github.com/dashpay/mnlist-engine/internal/model"

// ShouldProcessQuorum implements spec §4.3.4's should_process_quorum
// policy: whether a quorum of llmqType encountered while processing a
// diff (isDIP0024: the diff came from a QRINFO/rotated-info exchange;
// rotatedQuorumsPresented: the chain has rotated quorums configured at
// all) should be validated.
func ShouldProcessQuorum(chain ChainPolicy, llmqType model.LLMQType, isDIP0024, rotatedQuorumsPresented bool) bool {
	if chain != nil && llmqType == chain.ISDLLMQType() {
		return isDIP0024 && rotatedQuorumsPresented
	}
	if isDIP0024 {
		return false
	}
	if chain == nil {
		return false
	}
	return chain.ShouldProcessLLMQOfType(llmqType)
}
